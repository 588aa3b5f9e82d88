// Package reveal owns the scratch-off drawing surface. Each drag step
// clips to a capsule between the previous and current pointer positions
// and runs a fill routine inside it, so the fill shows through along the
// pointer's path.
package reveal

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"time"

	"github.com/fogleman/gg"

	"github.com/example/revealit/internal/logging"
)

const (
	// ResolutionMultiplier scales the logical display size to the backing
	// store size.
	ResolutionMultiplier = 2.0

	// PollInterval is how often the host should call ResizeIfNeeded.
	PollInterval = 200 * time.Millisecond

	// strokeDivisor sets the capsule radius to a tenth of the larger
	// backing dimension.
	strokeDivisor = 10
)

var (
	// ErrSurfaceContextUnavailable means the surface has no drawing context.
	ErrSurfaceContextUnavailable = errors.New("reveal: surface context unavailable")

	// ErrBusy means a resize or paint was attempted while a paint was in
	// progress.
	ErrBusy = errors.New("reveal: surface is painting")
)

// Host is the on-screen element the surface is shown in. Both values are
// in the host's logical input coordinate space.
type Host interface {
	DisplaySize() (width, height int)
	Origin() gg.Point
}

// FillFunc paints a whole tile onto dc, whose backing store is width by
// height pixels. It must paint with path fills or text: gg's Clear ignores
// the clip mask.
type FillFunc func(dc *gg.Context, width, height float64) error

// Allocator creates a backing context of the given pixel size.
type Allocator func(width, height int) (*gg.Context, error)

func defaultAllocator(width, height int) (*gg.Context, error) {
	return gg.NewContext(width, height), nil
}

type state int

const (
	stateIdle state = iota
	statePainting
)

// Surface is the stateful drawing surface. It is not safe for concurrent
// use; the host drives it from one goroutine.
type Surface struct {
	host   Host
	alloc  Allocator
	onDraw func()
	log    *slog.Logger

	dc         *gg.Context
	state      state
	generation uint64
}

// Option configures a Surface.
type Option func(*Surface)

// WithAllocator replaces the backing store allocator.
func WithAllocator(a Allocator) Option {
	return func(s *Surface) { s.alloc = a }
}

// WithOnDraw registers fn to run after every successful drag composite.
func WithOnDraw(fn func()) Option {
	return func(s *Surface) { s.onDraw = fn }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Surface) { s.log = logging.OrNop(l) }
}

// New creates a surface sized to host.
func New(host Host, opts ...Option) (*Surface, error) {
	s := &Surface{
		host:  host,
		alloc: defaultAllocator,
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if _, err := s.ResizeIfNeeded(); err != nil {
		return nil, err
	}
	return s, nil
}

func backingSize(logical int) int {
	if logical < 0 {
		logical = 0
	}
	return int(math.Round(float64(logical) * ResolutionMultiplier))
}

// ResizeIfNeeded reallocates the backing store when it no longer matches
// the host's display size times ResolutionMultiplier. Reallocation clears
// everything drawn so far. It reports whether a reallocation happened.
func (s *Surface) ResizeIfNeeded() (bool, error) {
	if s.state == statePainting {
		return false, fmt.Errorf("resize: %w", ErrBusy)
	}
	dw, dh := s.host.DisplaySize()
	w, h := backingSize(dw), backingSize(dh)
	if s.dc != nil && s.dc.Width() == w && s.dc.Height() == h {
		return false, nil
	}

	dc, err := s.alloc(w, h)
	if err != nil {
		return false, fmt.Errorf("allocate %dx%d: %w: %w", w, h, ErrSurfaceContextUnavailable, err)
	}
	if dc == nil {
		return false, fmt.Errorf("allocate %dx%d: %w", w, h, ErrSurfaceContextUnavailable)
	}
	if s.dc != nil {
		s.log.Info("surface resized, reveal progress cleared",
			"from", fmt.Sprintf("%dx%d", s.dc.Width(), s.dc.Height()),
			"to", fmt.Sprintf("%dx%d", w, h))
	}
	s.dc = dc
	s.generation++
	return true, nil
}

// Size returns the backing store size in pixels.
func (s *Surface) Size() (width, height int) {
	if s.dc == nil {
		return 0, 0
	}
	return s.dc.Width(), s.dc.Height()
}

// Image returns the backing pixels. The image is replaced on resize.
func (s *Surface) Image() *image.RGBA {
	if s.dc == nil {
		return nil
	}
	rgba, _ := s.dc.Image().(*image.RGBA)
	return rgba
}

// Generation increases whenever the backing pixels may have changed.
func (s *Surface) Generation() uint64 { return s.generation }

// StrokeRadius is the capsule radius: a tenth of the larger backing
// dimension.
func (s *Surface) StrokeRadius() float64 {
	w, h := s.Size()
	return math.Max(float64(w), float64(h)) / strokeDivisor
}

// ToSurface maps a point from host input coordinates to backing pixels.
func (s *Surface) ToSurface(p gg.Point) gg.Point {
	o := s.host.Origin()
	return gg.Point{
		X: (p.X - o.X) * ResolutionMultiplier,
		Y: (p.Y - o.Y) * ResolutionMultiplier,
	}
}

// DragCapsule returns the capsule, in backing pixels, for a drag event at
// pos that moved by delta since the previous event.
func (s *Surface) DragCapsule(pos, delta gg.Point) Capsule {
	prev := gg.Point{X: pos.X - delta.X, Y: pos.Y - delta.Y}
	return Capsule{
		A:      s.ToSurface(prev),
		B:      s.ToSurface(pos),
		Radius: s.StrokeRadius(),
	}
}

// HandleDrag reveals fill inside the capsule swept between pos-delta and
// pos. Earlier reveals are kept. The OnDraw hook runs after a successful
// composite.
func (s *Surface) HandleDrag(pos, delta gg.Point, fill FillFunc) error {
	if w, h := s.Size(); s.dc != nil && (w == 0 || h == 0) {
		return nil
	}
	c := s.DragCapsule(pos, delta)
	if err := s.paint(fill, c.Trace); err != nil {
		return err
	}
	if s.onDraw != nil {
		s.onDraw()
	}
	return nil
}

// PaintAll runs fill over the whole surface without a clip. The OnDraw
// hook is not called.
func (s *Surface) PaintAll(fill FillFunc) error {
	return s.paint(fill, nil)
}

func (s *Surface) paint(fill FillFunc, clip func(*gg.Context)) error {
	if s.dc == nil {
		return ErrSurfaceContextUnavailable
	}
	if s.state == statePainting {
		return fmt.Errorf("paint: %w", ErrBusy)
	}
	s.state = statePainting
	defer func() { s.state = stateIdle }()

	dc := s.dc
	dc.Push()
	// gg's Pop keeps the current mask, so drop the capsule clip explicitly.
	defer func() {
		dc.Pop()
		dc.ResetClip()
	}()
	if clip != nil {
		dc.ClearPath()
		clip(dc)
		dc.Clip()
	}
	err := fill(dc, float64(dc.Width()), float64(dc.Height()))
	dc.ClearPath()
	s.generation++
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	return nil
}
