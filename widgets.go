package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

type button struct {
	rect    image.Rectangle
	label   string
	bg      color.Color
	fg      color.Color
	border  func() int
	visible func() bool
	onClick func()
}

func rectContainsPoint(rect image.Rectangle, p image.Point) bool {
	return p.X >= rect.Min.X && p.X < rect.Max.X && p.Y >= rect.Min.Y && p.Y < rect.Max.Y
}

func (b *button) shown() bool {
	return b.visible == nil || b.visible()
}

func (b *button) contains(x, y int) bool {
	return b.shown() && rectContainsPoint(b.rect, image.Pt(x, y))
}

func (b *button) draw(dst *ebiten.Image, face font.Face) {
	if !b.shown() {
		return
	}
	border := 2
	if b.border != nil {
		border = b.border()
	}
	r := b.rect
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), color.Black, false)
	inner := r.Inset(border)
	vector.DrawFilledRect(dst, float32(inner.Min.X), float32(inner.Min.Y), float32(inner.Dx()), float32(inner.Dy()), b.bg, false)
	if b.label == "" {
		return
	}
	w := font.MeasureString(face, b.label).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()+ascent)/2
	text.Draw(dst, b.label, face, x, y, b.fg)
}
