package reveal

import (
	"math"

	"github.com/fogleman/gg"
)

// Capsule is the stadium shape swept by a disc of Radius moving from A to B.
type Capsule struct {
	A, B   gg.Point
	Radius float64
}

func (c Capsule) angle() float64 {
	return math.Atan2(c.B.Y-c.A.Y, c.B.X-c.A.X)
}

func polar(center gg.Point, r, a float64) gg.Point {
	return gg.Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
}

// Trace appends the closed capsule outline to dc's current path: half a
// circle behind A, the tangent edge to B, half a circle beyond B, and the
// closing edge back to the start.
func (c Capsule) Trace(dc *gg.Context) {
	a := c.angle()
	start := polar(c.A, c.Radius, a+math.Pi/2)
	dc.MoveTo(start.X, start.Y)
	dc.DrawArc(c.A.X, c.A.Y, c.Radius, a+math.Pi/2, a+3*math.Pi/2)
	end := polar(c.B, c.Radius, a-math.Pi/2)
	dc.LineTo(end.X, end.Y)
	dc.DrawArc(c.B.X, c.B.Y, c.Radius, a-math.Pi/2, a+math.Pi/2)
	dc.ClosePath()
}
