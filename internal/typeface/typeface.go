// Package typeface provides pixel-sized font faces backed by the embedded
// Go fonts, and measures text for fittext.
package typeface

import (
	"fmt"
	"strings"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Cache hands out one face per pixel size of a parsed TrueType font.
// It is not safe for concurrent use.
type Cache struct {
	name  string
	font  *truetype.Font
	faces map[int]font.Face
}

// Parse builds a Cache from raw TTF data.
func Parse(name string, ttf []byte) (*Cache, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", name, err)
	}
	return &Cache{name: name, font: f, faces: make(map[int]font.Face)}, nil
}

// Mono returns a Cache over Go Mono.
func Mono() (*Cache, error) { return Parse("mono", gomono.TTF) }

// Regular returns a Cache over Go Regular.
func Regular() (*Cache, error) { return Parse("regular", goregular.TTF) }

// ByName picks an embedded font: "mono" or "regular".
func ByName(name string) (*Cache, error) {
	switch strings.ToLower(name) {
	case "", "mono":
		return Mono()
	case "regular":
		return Regular()
	default:
		return nil, fmt.Errorf("unknown font %q", name)
	}
}

// Name returns the font name the cache was built with.
func (c *Cache) Name() string { return c.name }

// Face returns the face for size pixels, creating it on first use.
func (c *Cache) Face(size int) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(c.font, &truetype.Options{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[size] = f
	return f
}

// Measure returns the advance width of s at size pixels.
func (c *Cache) Measure(s string, size int) float64 {
	return toFloat(font.MeasureString(c.Face(size), s))
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
