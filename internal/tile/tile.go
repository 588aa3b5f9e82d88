// Package tile describes the colored tiles a user can reveal and paints
// them: a background color plus a centered, slightly rotated label.
package tile

import (
	"image/color"
	"math/rand"

	"golang.org/x/image/colornames"
)

// Jitter is the per-tile hand-drawn offset. Each field is in [0, 1) and is
// mapped to a rotation or displacement when the tile is painted.
type Jitter struct {
	Rotation float64
	DX       float64
	DY       float64
}

// NewJitter draws a fresh Jitter from r.
func NewJitter(r *rand.Rand) Jitter {
	return Jitter{
		Rotation: r.Float64(),
		DX:       r.Float64(),
		DY:       r.Float64(),
	}
}

// Tile is one color/text combination. Jitter is fixed when the tile is
// built and reused for every paint.
type Tile struct {
	Name       string
	Background color.RGBA
	Label      color.RGBA
	Text       string
	Jitter     Jitter
}

// New builds a tile and rolls its jitter once.
func New(name string, bg, label color.RGBA, text string, r *rand.Rand) Tile {
	return Tile{
		Name:       name,
		Background: bg,
		Label:      label,
		Text:       text,
		Jitter:     NewJitter(r),
	}
}

// Default returns the six-tile palette.
func Default(r *rand.Rand) []Tile {
	return []Tile{
		New("red", colornames.Red, colornames.White, "Creative&nbsp;Coding<br>WebGL GLSL Three.js", r),
		New("violet", colornames.Violet, colornames.Black, "React TypeScript<br>Node.js", r),
		New("orange", colornames.Orange, colornames.Black, "Motion&nbsp;Design<br>After&nbsp;Effects Blender", r),
		New("yellow", colornames.Yellow, colornames.Black, "UX&nbsp;Research<br>Prototyping Figma", r),
		New("lime", colornames.Lime, colornames.Black, "Go Rust<br>Postgres Redis", r),
		New("blue", colornames.Blue, colornames.White, "Teaching<br>Writing Speaking", r),
	}
}
