package fittext

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"unicode/utf8"
)

// monoMeasurer gives every rune an advance of 0.6 em.
type monoMeasurer struct {
	maxSize int
}

func (m *monoMeasurer) Measure(s string, size int) float64 {
	if size > m.maxSize {
		m.maxSize = size
	}
	return float64(utf8.RuneCountInString(s)) * float64(size) * 0.6
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []token
	}{
		{"empty", "", nil},
		{"spaces", "  a   b ", []token{{text: "a"}, {text: "b"}}},
		{"nbsp", "New&nbsp;York city", []token{{text: "New York"}, {text: "city"}}},
		{"glued break", "alpha<br>beta", []token{{text: "alpha"}, {br: true}, {text: "beta"}}},
		{"spaced break", "alpha <br> beta", []token{{text: "alpha"}, {br: true}, {text: "beta"}}},
		{"lone nbsp", "a &nbsp; b", []token{{text: "a"}, {text: "b"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.in, "&nbsp;", "<br>")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tokenize(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFitForcedBreak(t *testing.T) {
	res, err := Fit(&monoMeasurer{}, "alpha<br>beta", Options{
		Rect:        Rect{Width: 1000, Height: 1000},
		MinFontSize: 10,
		MaxFontSize: 12,
		BR:          "<br>",
	})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if got, want := texts(res.Lines), []string{"alpha", "beta"}; !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %q, want %q", got, want)
	}
	if res.FontSize != 12 {
		t.Errorf("FontSize = %d, want 12", res.FontSize)
	}
}

func TestFitNonBreakingSpace(t *testing.T) {
	// At size 10 every rune is 6px: "New York" is 48px, "New York is" 66px.
	res, err := Fit(&monoMeasurer{}, "New&nbsp;York is big", Options{
		Rect:        Rect{Width: 50, Height: 1000},
		MinFontSize: 10,
		MaxFontSize: 10,
	})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if got, want := texts(res.Lines), []string{"New York", "is big"}; !reflect.DeepEqual(got, want) {
		t.Errorf("lines = %q, want %q", got, want)
	}

	// Too narrow for the glued phrase: it must not be split.
	_, err = Fit(&monoMeasurer{}, "New&nbsp;York", Options{
		Rect:        Rect{Width: 40, Height: 1000},
		MinFontSize: 10,
		MaxFontSize: 10,
	})
	if !errors.Is(err, ErrLayoutInfeasible) {
		t.Errorf("err = %v, want ErrLayoutInfeasible", err)
	}
}

func TestFitWordTooWideStopsSearch(t *testing.T) {
	m := &monoMeasurer{}
	_, err := Fit(m, "Supercalifragilistic", Options{
		Rect:        Rect{Width: 100, Height: 1000},
		MinFontSize: 20,
		MaxFontSize: 100,
	})
	if !errors.Is(err, ErrLayoutInfeasible) {
		t.Fatalf("err = %v, want ErrLayoutInfeasible", err)
	}
	if m.maxSize != 20 {
		t.Errorf("measured up to size %d, want search to stop at 20", m.maxSize)
	}
}

func TestFitTooTallAtMinimum(t *testing.T) {
	_, err := Fit(&monoMeasurer{}, "one two three four", Options{
		Rect:        Rect{Width: 1000, Height: 10},
		MinFontSize: 20,
		MaxFontSize: 40,
	})
	if !errors.Is(err, ErrLayoutInfeasible) {
		t.Errorf("err = %v, want ErrLayoutInfeasible", err)
	}
}

func TestFitMonotonic(t *testing.T) {
	const text = "the quick brown fox jumps over the lazy dog"
	rect := Rect{X: 5, Y: 7, Width: 200, Height: 120}
	m := &monoMeasurer{}

	best, err := Fit(m, text, Options{Rect: rect, MinFontSize: 8, MaxFontSize: 60})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if best.FontSize <= 8 || best.FontSize >= 60 {
		t.Fatalf("FontSize = %d, want strictly inside the search range", best.FontSize)
	}
	for size := 8; size <= best.FontSize; size++ {
		if _, err := Fit(m, text, Options{Rect: rect, MinFontSize: size, MaxFontSize: size}); err != nil {
			t.Errorf("size %d below best %d does not fit: %v", size, best.FontSize, err)
		}
	}
	next := best.FontSize + 1
	if _, err := Fit(m, text, Options{Rect: rect, MinFontSize: next, MaxFontSize: next}); !errors.Is(err, ErrLayoutInfeasible) {
		t.Errorf("size %d above best fits, want ErrLayoutInfeasible (err = %v)", next, err)
	}
}

func TestFitLinesWithinRect(t *testing.T) {
	rect := Rect{X: 10, Y: 20, Width: 200, Height: 150}
	m := &monoMeasurer{}
	res, err := Fit(m, "lorem ipsum dolor sit amet consectetur", Options{Rect: rect, MinFontSize: 5, MaxFontSize: 80})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	for i, l := range res.Lines {
		if w := m.Measure(l.Text, res.FontSize); w > rect.Width {
			t.Errorf("line %d %q is %gpx wide, rect is %g", i, l.Text, w, rect.Width)
		}
		if l.X != rect.X {
			t.Errorf("line %d X = %g, want %g", i, l.X, rect.X)
		}
		if l.Y > rect.Bottom() {
			t.Errorf("line %d baseline %g below rect bottom %g", i, l.Y, rect.Bottom())
		}
	}
	if res.Align != AlignLeft {
		t.Errorf("Align = %v, want AlignLeft", res.Align)
	}
}

func TestFitCenterX(t *testing.T) {
	rect := Rect{X: 10, Y: 0, Width: 300, Height: 300}
	res, err := Fit(&monoMeasurer{}, "hello there", Options{Rect: rect, CenterX: true})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if res.Align != AlignCenter {
		t.Errorf("Align = %v, want AlignCenter", res.Align)
	}
	for _, l := range res.Lines {
		if l.X != 160 {
			t.Errorf("line %q X = %g, want 160", l.Text, l.X)
		}
	}
}

func TestFitCenterY(t *testing.T) {
	rect := Rect{X: 0, Y: 50, Width: 200, Height: 400}
	opts := Options{Rect: rect, MinFontSize: 10, MaxFontSize: 20}
	const text = "some words<br>over<br>lines"
	opts.BR = "<br>"

	top, err := Fit(&monoMeasurer{}, text, opts)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	opts.CenterY = true
	centered, err := Fit(&monoMeasurer{}, text, opts)
	if err != nil {
		t.Fatalf("Fit centered: %v", err)
	}
	if len(top.Lines) != len(centered.Lines) || top.FontSize != centered.FontSize {
		t.Fatalf("centering changed the layout: %+v vs %+v", top, centered)
	}

	last := top.Lines[len(top.Lines)-1]
	want := (rect.Bottom() - last.Y - top.LineHeight/2) / 2
	if want <= 0 {
		t.Fatalf("expected leftover space, got shift %g", want)
	}
	for i := range top.Lines {
		if d := centered.Lines[i].Y - top.Lines[i].Y; math.Abs(d-want) > 1e-9 {
			t.Errorf("line %d shifted by %g, want %g", i, d, want)
		}
	}
}

func TestFitTrimsTrailingSpace(t *testing.T) {
	res, err := Fit(&monoMeasurer{}, "tail&nbsp;", Options{Rect: Rect{Width: 500, Height: 500}})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if res.Lines[0].Text != "tail" {
		t.Errorf("line = %q, want %q", res.Lines[0].Text, "tail")
	}
}

func TestFitEmptyText(t *testing.T) {
	// One empty line grows until it no longer fits: 45*1.1 <= 50 < 46*1.1.
	res, err := Fit(&monoMeasurer{}, "   ", Options{Rect: Rect{Width: 100, Height: 50}, MinFontSize: 20})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if len(res.Lines) != 1 || res.Lines[0].Text != "" {
		t.Errorf("lines = %+v, want one empty line", res.Lines)
	}
	if res.FontSize != 45 {
		t.Errorf("FontSize = %d, want 45", res.FontSize)
	}
	if res.Lines[0].Y > 50 {
		t.Errorf("baseline %g below rect bottom", res.Lines[0].Y)
	}

	_, err = Fit(&monoMeasurer{}, "", Options{Rect: Rect{Width: 100, Height: 5}, MinFontSize: 20})
	if !errors.Is(err, ErrLayoutInfeasible) {
		t.Errorf("empty line taller than rect: err = %v, want ErrLayoutInfeasible", err)
	}
}

func TestFitZeroRect(t *testing.T) {
	res, err := Fit(&monoMeasurer{}, "anything", Options{Rect: Rect{Width: 0, Height: 100}})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if len(res.Lines) != 0 {
		t.Errorf("lines = %+v, want none", res.Lines)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.LineHeight != DefaultLineHeight || o.MinFontSize != DefaultMinFontSize ||
		o.MaxFontSize != DefaultMaxFontSize || o.NBSP != DefaultNBSP || o.BR != DefaultBR {
		t.Errorf("defaults not applied: %+v", o)
	}
	if o.Logger == nil {
		t.Error("Logger not defaulted")
	}
}
