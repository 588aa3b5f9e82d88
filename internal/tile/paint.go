package tile

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/fogleman/gg"

	"github.com/example/revealit/internal/fittext"
	"github.com/example/revealit/internal/logging"
	"github.com/example/revealit/internal/reveal"
	"github.com/example/revealit/internal/typeface"
)

const (
	baseRotationDeg = -5
	rotationSpread  = 2
	displacement    = 10
	maxFontSize     = 500
	breakMarker     = "<br>"
	nbspMarker      = "&nbsp;"
)

// Painter paints tiles with a shared font.
type Painter struct {
	Fonts *typeface.Cache

	// Compact selects the paddings used for narrow layouts.
	Compact bool

	// Debug re-rolls jitter on every paint and shows the label area.
	Debug bool
	Rand  *rand.Rand

	// BareOnOverflow paints just the background when the label cannot fit
	// the label area, instead of failing with fittext.ErrLayoutInfeasible.
	BareOnOverflow bool

	Logger *slog.Logger
}

// LabelArea returns the unrotated, undisplaced label rectangle for a
// surface of w by h pixels.
func (p *Painter) LabelArea(w, h float64) fittext.Rect {
	padX := w * 0.15
	padTop, padBottom := h*0.2, h*0.25
	if p.Compact {
		padTop, padBottom = w*0.12, w*0.08
	}
	return fittext.Rect{
		X:      padX,
		Y:      padTop,
		Width:  w - 2*padX,
		Height: h - padTop - padBottom,
	}
}

// FillFor returns the reveal fill routine for t.
func (p *Painter) FillFor(t Tile) reveal.FillFunc {
	return func(dc *gg.Context, w, h float64) error {
		j := t.Jitter
		if p.Debug && p.Rand != nil {
			j = NewJitter(p.Rand)
		}
		return p.Paint(dc, t, j, w, h)
	}
}

// Paint fills the whole w by h surface with t's background and draws its
// label inside the label area, rotated and displaced by j.
func (p *Painter) Paint(dc *gg.Context, t Tile, j Jitter, w, h float64) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	dc.Push()
	defer dc.Pop()

	dc.SetColor(t.Background)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	area := p.LabelArea(w, h)
	if p.Debug {
		dc.Push()
		dc.RotateAbout(gg.Radians(baseRotationDeg), w/2, h/2)
		dc.SetRGB(0, 0, 0)
		dc.DrawRectangle(area.X, area.Y, area.Width, area.Height)
		dc.Fill()
		dc.Pop()
	}

	deg := baseRotationDeg + rotationSpread*(j.Rotation*2-1)
	dc.RotateAbout(gg.Radians(deg), w/2, h/2)

	area.X += displacement * (j.DX*2 - 1)
	area.Y += displacement * (j.DY*2 - 1)
	log := logging.OrNop(p.Logger).With("tile", t.Name)
	res, err := fittext.Fit(p.Fonts, t.Text, fittext.Options{
		Rect:        area,
		MaxFontSize: maxFontSize,
		CenterX:     true,
		CenterY:     true,
		BR:          breakMarker,
		NBSP:        nbspMarker,
		Logger:      log,
	})
	if err != nil {
		if p.BareOnOverflow && errors.Is(err, fittext.ErrLayoutInfeasible) {
			log.Warn("label does not fit, painting background only",
				"area", fmt.Sprintf("%.0fx%.0f", area.Width, area.Height))
			return nil
		}
		return fmt.Errorf("tile %s: %w", t.Name, err)
	}

	dc.SetColor(t.Label)
	DrawLines(dc, p.Fonts, res)
	return nil
}

// DrawLines paints a fittext result onto dc with the face for its size.
func DrawLines(dc *gg.Context, fonts *typeface.Cache, res fittext.Result) {
	if len(res.Lines) == 0 {
		return
	}
	dc.SetFontFace(fonts.Face(res.FontSize))
	ax := 0.0
	if res.Align == fittext.AlignCenter {
		ax = 0.5
	}
	for _, l := range res.Lines {
		dc.DrawStringAnchored(l.Text, l.X, l.Y, ax, 0)
	}
}
