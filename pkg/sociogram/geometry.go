package sociogram

import "math"

// Point is a position in scene coordinates (pixels, y grows downward).
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p*k.
func (p Point) Scale(k float64) Point { return Point{p.X * k, p.Y * k} }

// Len returns the distance of p from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// QuadPoint evaluates the quadratic Bézier a, c, b at t.
func QuadPoint(a, c, b Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*a.X + 2*u*t*c.X + t*t*b.X,
		Y: u*u*a.Y + 2*u*t*c.Y + t*t*b.Y,
	}
}

// segmentDistance returns the distance from p to the segment a-b.
func segmentDistance(p, a, b Point) float64 {
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 {
		return p.Sub(a).Len()
	}
	t := ((p.X-a.X)*d.X + (p.Y-a.Y)*d.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Sub(a.Add(d.Scale(t))).Len()
}

// normalizeAngle maps a to (-π, π], the range of math.Atan2.
func normalizeAngle(a float64) float64 {
	return math.Atan2(math.Sin(a), math.Cos(a))
}
