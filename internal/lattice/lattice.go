// Package lattice filters candidate intersection points down to verified
// chessboard corners and merges near-duplicates into a single point per
// true lattice intersection.
package lattice

import (
	"image"

	"github.com/boardvision/chessrectify/internal/corner"
	"github.com/boardvision/chessrectify/pkg/geometry"
)

// DefaultMergeRadius is the pixel radius used to fuse near-duplicate
// intersection points when the caller does not specify one.
const DefaultMergeRadius = 5

// Extract filters candidates by the corner test, then merges near-duplicates
// within mergeRadius of each other into their centroid. The output order
// follows visitation order over candidates; callers must not rely on it.
func Extract(gray *image.Gray, candidates []geometry.Point, mergeRadius float64) []geometry.Point {
	verified := filter(gray, candidates)
	return mergeDuplicates(verified, mergeRadius)
}

// filter keeps only the candidates that pass the corner test at the default
// ring radius.
func filter(gray *image.Gray, candidates []geometry.Point) []geometry.Point {
	kept := make([]geometry.Point, 0, len(candidates))
	for _, p := range candidates {
		x, y := int(p.X), int(p.Y)
		if corner.IsCorner(gray, x, y, corner.DefaultRadius) {
			kept = append(kept, p)
		}
	}
	return kept
}

// mergeDuplicates collapses clusters of points within mergeRadius of each
// other (inclusive) into their arithmetic mean, following the teacher's
// "claim neighbours, mark visited" dedup idiom: each not-yet-visited point
// gathers every not-yet-visited point within radius and the whole group is
// replaced by one point.
func mergeDuplicates(points []geometry.Point, mergeRadius float64) []geometry.Point {
	visited := make([]bool, len(points))
	r2 := mergeRadius * mergeRadius
	out := make([]geometry.Point, 0, len(points))

	for i := range points {
		if visited[i] {
			continue
		}
		group := []int{}
		for j := i; j < len(points); j++ {
			if visited[j] {
				continue
			}
			if points[i].DistSq(points[j]) <= r2 {
				group = append(group, j)
			}
		}
		if len(group) == 0 {
			continue
		}
		var sx, sy float64
		for _, idx := range group {
			visited[idx] = true
			sx += points[idx].X
			sy += points[idx].Y
		}
		n := float64(len(group))
		out = append(out, geometry.Point{X: sx / n, Y: sy / n})
	}
	return out
}
