// Package refine offsets a bounding quad outward and snaps each corner onto
// the nearest ambient intersection point, moving the minimum-area bounding
// box (which sits roughly one square inside the true board edge) onto the
// board's real outer grid lines.
package refine

import "github.com/boardvision/chessrectify/pkg/geometry"

// Offset pushes every edge of q outward by d along its outward normal and
// returns the resulting quad. For the clockwise [TL, TR, BR, BL] order in
// image space, the outward normal is the negated perp of the edge vector.
// Each new corner is the original corner plus the two incident edge-offset
// vectors. d > 0 grows the quad; d < 0 shrinks it.
func Offset(q geometry.Quad, d float64) geometry.Quad {
	var edgeOffsets [4]geometry.Point
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		edge := q[j].Sub(q[i])
		edgeOffsets[i] = edge.Perp().Normalized().Scale(-d)
	}

	var out geometry.Quad
	for i := 0; i < 4; i++ {
		prev := (i - 1 + 4) % 4
		out[i] = q[i].Add(edgeOffsets[prev]).Add(edgeOffsets[i])
	}
	return out
}

// Snap replaces each corner of q with the nearest point in candidates
// (squared Euclidean distance), ties broken by the earlier index in
// candidates (insertion order).
func Snap(q geometry.Quad, candidates []geometry.Point) geometry.Quad {
	if len(candidates) == 0 {
		return q
	}
	var out geometry.Quad
	for i, corner := range q {
		out[i] = nearest(corner, candidates)
	}
	return out
}

func nearest(p geometry.Point, candidates []geometry.Point) geometry.Point {
	best := candidates[0]
	bestDist := p.DistSq(best)
	for _, c := range candidates[1:] {
		d := p.DistSq(c)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}
