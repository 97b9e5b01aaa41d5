// Package geometry provides the 2D vector arithmetic used throughout the
// board-rectification pipeline: points, lines, and quads, plus the line
// intersection routine every downstream stage builds on.
package geometry

import "math"

// Point is an immutable pair (x, y) of real coordinates in image space.
// X grows right, Y grows down.
type Point struct {
	X, Y float64
}

// Pt is a convenience constructor.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar) of p and q.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Perp returns the vector rotated 90 degrees counter-clockwise: (-y, x).
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// DistSq returns the squared Euclidean distance between p and q.
func (p Point) DistSq(q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Sqrt(p.DistSq(q))
}

// Norm returns the Euclidean length of p treated as a vector from the origin.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Normalized returns p scaled to unit length. Returns the zero vector if p
// is itself the zero vector.
func (p Point) Normalized() Point {
	n := p.Norm()
	if n == 0 {
		return Point{}
	}
	return Point{X: p.X / n, Y: p.Y / n}
}

// Line is a pair (Start, End) of points, an infinite line clipped to an
// image rectangle for display and intersection bookkeeping.
type Line struct {
	Start, End Point
}

// Intersect returns the intersection of the infinite lines spanned by l and
// m, using the standard determinant form described in spec §4.1. The second
// return value is false when the lines are exactly parallel (det == 0) or
// the intersection point is not finite.
func (l Line) Intersect(m Line) (Point, bool) {
	x1, y1 := l.Start.X, l.Start.Y
	x2, y2 := l.End.X, l.End.Y
	x3, y3 := m.Start.X, m.Start.Y
	x4, y4 := m.End.X, m.End.Y

	a1 := y2 - y1
	b1 := x1 - x2
	c1 := a1*x1 + b1*y1

	a2 := y4 - y3
	b2 := x3 - x4
	c2 := a2*x3 + b2*y3

	det := a1*b2 - a2*b1
	if det == 0 {
		return Point{}, false
	}

	x := (b2*c1 - b1*c2) / det
	y := (a1*c2 - a2*c1) / det
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// InBounds reports whether p lies within [0,w] x [0,h], inclusive.
func InBounds(p Point, w, h float64) bool {
	return p.X >= 0 && p.X <= w && p.Y >= 0 && p.Y <= h
}

// Quad is an ordered sequence of exactly four points representing an
// oriented quadrilateral. Canonical order is clockwise starting at the
// top-left: [TL, TR, BR, BL].
type Quad [4]Point

// Area returns the quad's signed area via the shoelace formula; positive
// for clockwise winding in image-space (y grows down).
func (q Quad) Area() float64 {
	var sum float64
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		sum += q[i].X*q[j].Y - q[j].X*q[i].Y
	}
	return sum / 2
}

// Centroid returns the arithmetic mean of the four vertices.
func (q Quad) Centroid() Point {
	var sx, sy float64
	for _, p := range q {
		sx += p.X
		sy += p.Y
	}
	return Point{X: sx / 4, Y: sy / 4}
}

// Centroid computes the centroid (average position) of a set of points.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))
	return Point{X: sx / n, Y: sy / n}
}

// BoundingBoxArea returns the area of the axis-aligned bounding box of pts.
func BoundingBoxArea(pts []Point) float64 {
	if len(pts) == 0 {
		return 0
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return (maxX - minX) * (maxY - minY)
}
