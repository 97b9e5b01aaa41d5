// Package mbb computes the minimum-area oriented bounding rectangle of a
// convex polygon via rotating calipers: trial each edge direction in turn,
// measure the axis-aligned extent in that rotated frame, and keep the
// cheapest one.
package mbb

import (
	"math"
	"sort"

	"github.com/boardvision/chessrectify/pkg/geometry"
)

// MinAreaQuad returns the minimum-area rectangle enclosing the convex
// polygon hull (given in order), canonicalised to [TL, TR, BR, BL]. Returns
// ok=false if hull has fewer than 3 points.
func MinAreaQuad(hull []geometry.Point) (geometry.Quad, bool) {
	n := len(hull)
	if n < 3 {
		return geometry.Quad{}, false
	}

	bestArea := math.Inf(1)
	var bestQuad geometry.Quad

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		edge := hull[j].Sub(hull[i])
		theta := math.Atan2(edge.Y, edge.X)

		rect, area := boundingRectAt(hull, -theta)
		if area < bestArea {
			bestArea = area
			bestQuad = rotateBack(rect, theta)
		}
	}

	return Canonicalize(bestQuad), true
}

// boundingRectAt rotates every hull point by theta (a change of basis) and
// returns the axis-aligned bounding rectangle in that rotated frame, along
// with its area, as four corners still expressed in the rotated frame.
func boundingRectAt(hull []geometry.Point, theta float64) ([4]geometry.Point, float64) {
	cos, sin := math.Cos(theta), math.Sin(theta)
	rotate := func(p geometry.Point) geometry.Point {
		return geometry.Point{
			X: cos*p.X - sin*p.Y,
			Y: sin*p.X + cos*p.Y,
		}
	}

	first := rotate(hull[0])
	minX, maxX := first.X, first.X
	minY, maxY := first.Y, first.Y
	for _, p := range hull[1:] {
		r := rotate(p)
		minX = math.Min(minX, r.X)
		maxX = math.Max(maxX, r.X)
		minY = math.Min(minY, r.Y)
		maxY = math.Max(maxY, r.Y)
	}

	area := (maxX - minX) * (maxY - minY)
	rect := [4]geometry.Point{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}
	return rect, area
}

// rotateBack rotates the four rectangle corners (expressed in the trial
// frame) back by +theta into the original frame.
func rotateBack(rect [4]geometry.Point, theta float64) geometry.Quad {
	cos, sin := math.Cos(theta), math.Sin(theta)
	var out geometry.Quad
	for i, p := range rect {
		out[i] = geometry.Point{
			X: cos*p.X - sin*p.Y,
			Y: sin*p.X + cos*p.Y,
		}
	}
	return out
}

// Canonicalize reorders a quad's four vertices to [TL, TR, BR, BL]: sort by
// y, split into the two smallest-y and two largest-y points, and sort each
// pair by x.
func Canonicalize(q geometry.Quad) geometry.Quad {
	pts := make([]geometry.Point, 4)
	copy(pts, q[:])
	sort.Slice(pts, func(i, j int) bool { return pts[i].Y < pts[j].Y })

	top := pts[:2]
	bottom := pts[2:]
	sort.Slice(top, func(i, j int) bool { return top[i].X < top[j].X })
	sort.Slice(bottom, func(i, j int) bool { return bottom[i].X < bottom[j].X })

	return geometry.Quad{top[0], top[1], bottom[1], bottom[0]}
}
