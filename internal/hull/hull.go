// Package hull computes the convex hull of a 2D point set by gift-wrapping
// (Jarvis march), then prunes collinear vertices.
package hull

import "github.com/boardvision/chessrectify/pkg/geometry"

// collinearTolerance is the numerical tolerance on the signed-area
// contribution used to collapse three consecutive near-collinear hull
// vertices.
const collinearTolerance = 0.01

// ConvexHull returns the convex hull of points in clockwise order (image
// space convention: y grows down), with collinear vertices removed. Inputs
// of fewer than 3 points are returned unchanged.
func ConvexHull(points []geometry.Point) []geometry.Point {
	if len(points) < 3 {
		return points
	}

	start := leftmost(points)
	hull := []geometry.Point{points[start]}
	current := start

	for {
		next := 0
		for i := range points {
			if i == current {
				continue
			}
			if next == current {
				next = i
				continue
			}
			cross := turn(points[current], points[next], points[i])
			if cross < 0 {
				// i makes a rightward turn relative to the current
				// candidate "next" — i is farther clockwise, pick it.
				next = i
			} else if cross == 0 {
				// Collinear: keep the farther point so the walk doesn't
				// stall on an interior point of the same edge.
				if points[current].DistSq(points[i]) > points[current].DistSq(points[next]) {
					next = i
				}
			}
		}

		if next == start {
			break
		}
		hull = append(hull, points[next])
		current = next

		if len(hull) > len(points) {
			// Degenerate input (e.g. duplicate points) that would never
			// revisit start exactly; stop rather than loop forever.
			break
		}
	}

	return removeCollinear(hull)
}

// leftmost returns the index of the leftmost point, breaking ties by
// smallest y.
func leftmost(points []geometry.Point) int {
	best := 0
	for i := 1; i < len(points); i++ {
		if points[i].X < points[best].X ||
			(points[i].X == points[best].X && points[i].Y < points[best].Y) {
			best = i
		}
	}
	return best
}

// turn returns the cross product of (b-a) x (c-a); negative means c is to
// the right of the directed line a->b (image-space convention).
func turn(a, b, c geometry.Point) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// removeCollinear drops any hull vertex whose incident edges are collinear
// within tolerance, per spec: three consecutive points p(i-1), p(i), p(i+1)
// collapse when |dot(edge_prev, perp(edge_next))| <= tolerance.
func removeCollinear(hull []geometry.Point) []geometry.Point {
	n := len(hull)
	if n < 3 {
		return hull
	}

	out := make([]geometry.Point, 0, n)
	for i := 0; i < n; i++ {
		prev := hull[(i-1+n)%n]
		cur := hull[i]
		next := hull[(i+1)%n]

		edgePrev := cur.Sub(prev)
		edgeNext := next.Sub(cur)

		score := edgePrev.Dot(edgeNext.Perp())
		if score < 0 {
			score = -score
		}
		if score <= collinearTolerance {
			continue
		}
		out = append(out, cur)
	}

	if len(out) < 3 {
		return hull
	}
	return out
}

// Area returns the polygon area via fan triangulation from the first
// vertex: half the absolute sum of cross products of (p_i - p_0) x
// (p_{i+1} - p_0).
func Area(polygon []geometry.Point) float64 {
	if len(polygon) < 3 {
		return 0
	}
	p0 := polygon[0]
	var sum float64
	for i := 1; i < len(polygon)-1; i++ {
		a := polygon[i].Sub(p0)
		b := polygon[i+1].Sub(p0)
		sum += a.Cross(b)
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}
