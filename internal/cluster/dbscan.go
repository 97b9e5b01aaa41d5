// Package cluster implements DBSCAN density clustering over 2D points.
//
// Per the design notes, this never hashes points by value: the algorithm
// operates on point indices throughout and keeps an index->label array,
// so order of assignment is always driven by input-point index rather than
// map iteration order.
package cluster

import "github.com/boardvision/chessrectify/pkg/geometry"

// Noise is the label assigned to points that belong to no cluster.
const Noise = 0

// Params configures a DBSCAN run.
type Params struct {
	Eps    float64 // neighbourhood radius
	MinPts int     // minimum points (including the point itself) to form a cluster
}

// Labels runs DBSCAN over points and returns a label for every point, in
// input order. Label 0 means noise; labels >= 1 identify clusters. Every
// input point receives exactly one label; degenerate inputs (empty,
// all-noise) yield a vector of zeros.
func Labels(points []geometry.Point, params Params) []int {
	n := len(points)
	labels := make([]int, n)
	if n == 0 {
		return labels
	}

	index := newGrid(points, params.Eps)
	visited := make([]bool, n)
	nextID := 0

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := index.regionQuery(points, i, params.Eps)
		if len(neighbors) < params.MinPts {
			labels[i] = Noise
			continue
		}

		nextID++
		expandCluster(points, index, labels, visited, i, neighbors, nextID, params)
	}

	return labels
}

// expandCluster grows cluster id from the core point seed using a FIFO
// queue of indices still to be examined. A point already claimed by an
// earlier cluster is never re-labelled (tie-breaking per spec: a border
// point claimed by cluster k stays in cluster k even if later reached from
// cluster k' != k).
func expandCluster(points []geometry.Point, index *grid, labels []int, visited []bool,
	seed int, neighbors []int, id int, params Params) {

	labels[seed] = id

	queue := append([]int(nil), neighbors...)
	for qi := 0; qi < len(queue); qi++ {
		idx := queue[qi]

		if labels[idx] != Noise {
			continue // already claimed by this or an earlier cluster
		}
		if !visited[idx] {
			visited[idx] = true
			more := index.regionQuery(points, idx, params.Eps)
			if len(more) >= params.MinPts {
				queue = append(queue, more...)
			}
		}
		if labels[idx] == Noise {
			labels[idx] = id
		}
	}
}

// LargestCluster returns the label id with the most members (>=1), and the
// indices of its members in input order. ok is false if every label is
// noise.
func LargestCluster(labels []int) (id int, members []int, ok bool) {
	counts := map[int]int{}
	for _, l := range labels {
		if l != Noise {
			counts[l]++
		}
	}
	best, bestCount := 0, 0
	for l, c := range counts {
		if c > bestCount || (c == bestCount && l < best) {
			best, bestCount = l, c
		}
	}
	if bestCount == 0 {
		return 0, nil, false
	}
	for i, l := range labels {
		if l == best {
			members = append(members, i)
		}
	}
	return best, members, true
}
