// Package fittext finds the largest font size at which a string can be
// greedily word-wrapped into a rectangle, and returns the positioned lines.
//
// Layout is pure: text widths come from a Measurer and nothing is painted.
package fittext

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/example/revealit/internal/logging"
)

// ErrLayoutInfeasible is returned when no font size in the configured range
// fits the text into the rectangle.
var ErrLayoutInfeasible = errors.New("fittext: layout infeasible")

// Defaults applied by Fit for zero-valued Options fields.
const (
	DefaultLineHeight  = 1.1
	DefaultMinFontSize = 20
	DefaultMaxFontSize = 100
	DefaultNBSP        = "&nbsp;"
	DefaultBR          = "\n"
)

// Measurer reports the advance width of a string set at a pixel size.
// Widths must not decrease as size grows.
type Measurer interface {
	Measure(s string, size int) float64
}

// Rect is the target area in surface pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Bottom returns the y coordinate of the rectangle's lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Align is the horizontal alignment the painter should use for each line.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Line is one wrapped line. X, Y is the baseline anchor: left edge for
// AlignLeft, horizontal center for AlignCenter.
type Line struct {
	Text string
	X, Y float64
}

// Result is the chosen font size and the lines laid out at that size.
type Result struct {
	Lines      []Line
	FontSize   int
	LineHeight float64
	Align      Align
}

// Options configures Fit.
type Options struct {
	Rect Rect

	// LineHeight is a multiple of the font size.
	LineHeight float64

	MinFontSize int
	MaxFontSize int

	CenterX bool
	CenterY bool

	// NBSP is replaced by a literal space inside a word, gluing words
	// together on one line.
	NBSP string
	// BR forces a line break wherever it occurs.
	BR string

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.LineHeight <= 0 {
		o.LineHeight = DefaultLineHeight
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.MaxFontSize <= 0 {
		o.MaxFontSize = DefaultMaxFontSize
	}
	if o.NBSP == "" {
		o.NBSP = DefaultNBSP
	}
	if o.BR == "" {
		o.BR = DefaultBR
	}
	o.Logger = logging.OrNop(o.Logger)
	return o
}

type outcome int

const (
	fits outcome = iota
	wordTooWide
	tooTall
)

func (o outcome) String() string {
	switch o {
	case wordTooWide:
		return "word too wide"
	case tooTall:
		return "too tall"
	default:
		return "fits"
	}
}

// Fit searches font sizes upward from MinFontSize and keeps the last one
// whose wrapped lines fit inside opts.Rect. The search stops at the first
// size where a single word is wider than the rectangle or the lines
// overflow its height.
//
// Empty text lays out as a single empty line. A rectangle without area
// yields an empty Result, not an error.
func Fit(m Measurer, text string, opts Options) (Result, error) {
	opts = opts.withDefaults()
	r := opts.Rect
	if r.Width <= 0 || r.Height <= 0 {
		return Result{}, nil
	}

	words := tokenize(text, opts.NBSP, opts.BR)
	opts.Logger.Debug("text tokenized", "words", len(words))

	x, align := r.X, AlignLeft
	if opts.CenterX {
		x, align = r.X+r.Width/2, AlignCenter
	}

	var best Result
	for size := opts.MinFontSize; size <= opts.MaxFontSize; size++ {
		lines, out := wrap(m, words, size, x, opts)
		if out != fits {
			opts.Logger.Debug("font size rejected", "size", size, "reason", out.String())
			break
		}
		best = Result{
			Lines:      lines,
			FontSize:   size,
			LineHeight: float64(size) * opts.LineHeight,
		}
	}
	if len(best.Lines) == 0 {
		return Result{}, fmt.Errorf("%w: %q in %gx%g at sizes %d-%d",
			ErrLayoutInfeasible, text, r.Width, r.Height, opts.MinFontSize, opts.MaxFontSize)
	}
	best.Align = align

	if opts.CenterY {
		last := best.Lines[len(best.Lines)-1]
		shift := (r.Bottom() - last.Y - best.LineHeight/2) / 2
		for i := range best.Lines {
			best.Lines[i].Y += shift
		}
	}
	for i := range best.Lines {
		best.Lines[i].Text = strings.TrimRightFunc(best.Lines[i].Text, unicode.IsSpace)
	}

	opts.Logger.Debug("layout chosen", "size", best.FontSize, "lines", len(best.Lines))
	return best, nil
}

// wrap greedily fills lines at one font size. It returns nil lines unless
// the outcome is fits.
func wrap(m Measurer, words []token, size int, x float64, opts Options) ([]Line, outcome) {
	lh := float64(size) * opts.LineHeight
	width := opts.Rect.Width
	y := opts.Rect.Y + lh

	var lines []Line
	line := ""
	for _, w := range words {
		if w.br {
			lines = append(lines, Line{Text: line, X: x, Y: y})
			line = ""
			y += lh
			continue
		}
		if m.Measure(w.text, size) > width {
			return nil, wordTooWide
		}
		if line == "" {
			line = w.text
			continue
		}
		joined := line + " " + w.text
		if m.Measure(joined, size) > width {
			lines = append(lines, Line{Text: line, X: x, Y: y})
			line = w.text
			y += lh
			continue
		}
		line = joined
	}
	lines = append(lines, Line{Text: line, X: x, Y: y})

	if y > opts.Rect.Bottom() {
		return nil, tooTall
	}
	return lines, fits
}
