package cluster

import (
	"math"

	"github.com/boardvision/chessrectify/pkg/geometry"
)

// grid is a regular spatial index over a point set, used to make
// neighbourhood queries sub-quadratic. Cell size matches eps so that any
// point within eps of a query point lies in one of the 3x3 neighbouring
// cells.
type grid struct {
	cellSize float64
	cells    map[int64][]int
}

func newGrid(points []geometry.Point, eps float64) *grid {
	if eps <= 0 {
		eps = 1
	}
	g := &grid{cellSize: eps, cells: make(map[int64][]int, len(points))}
	for i, p := range points {
		id := g.cellID(p.X, p.Y)
		g.cells[id] = append(g.cells[id], i)
	}
	return g
}

// cellID packs the (possibly negative) integer cell coordinates into a
// single key via zigzag encoding plus Szudzik's pairing function.
func (g *grid) cellID(x, y float64) int64 {
	cx := int64(math.Floor(x / g.cellSize))
	cy := int64(math.Floor(y / g.cellSize))
	return szudzik(zigzag(cx), zigzag(cy))
}

func zigzag(v int64) int64 {
	if v >= 0 {
		return 2 * v
	}
	return -2*v - 1
}

func szudzik(a, b int64) int64 {
	if a >= b {
		return a*a + a + b
	}
	return a + b*b
}

// regionQuery returns the indices of every point within eps of points[idx],
// including idx itself.
func (g *grid) regionQuery(points []geometry.Point, idx int, eps float64) []int {
	p := points[idx]
	eps2 := eps * eps
	cx := int64(math.Floor(p.X / g.cellSize))
	cy := int64(math.Floor(p.Y / g.cellSize))

	var neighbors []int
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			id := szudzik(zigzag(cx+dx), zigzag(cy+dy))
			for _, j := range g.cells[id] {
				if p.DistSq(points[j]) <= eps2 {
					neighbors = append(neighbors, j)
				}
			}
		}
	}
	return neighbors
}
