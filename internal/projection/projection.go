// Package projection solves for the 3x3 homography mapping four source
// points onto four destination points (the "Projection::from_control_points"
// external collaborator contract) and applies it to points.
package projection

import (
	"math"

	"github.com/boardvision/chessrectify/pkg/geometry"
	"gonum.org/v1/gonum/mat"
)

// Projection is a 3x3 homography, stored row-major with H[2][2] normalised
// to 1.
type Projection struct {
	H [3][3]float64
}

// Identity returns the identity projection.
func Identity() Projection {
	return Projection{H: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Apply maps a point through the projection.
func (p Projection) Apply(pt geometry.Point) geometry.Point {
	h := p.H
	w := h[2][0]*pt.X + h[2][1]*pt.Y + h[2][2]
	x := (h[0][0]*pt.X + h[0][1]*pt.Y + h[0][2]) / w
	y := (h[1][0]*pt.X + h[1][1]*pt.Y + h[1][2]) / w
	return geometry.Point{X: x, Y: y}
}

// Inverse returns the inverse projection, if it exists.
func (p Projection) Inverse() (Projection, bool) {
	m := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, p.H[i][j])
		}
	}
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return Projection{}, false
	}

	var out Projection
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.H[i][j] = inv.At(i, j)
		}
	}
	scale := out.H[2][2]
	if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return Projection{}, false
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.H[i][j] /= scale
		}
	}
	return out, true
}

// FromControlPoints solves the homography taking src[k] to dst[k] for
// k=0..3 using the direct linear transform: an 8x8 linear system for the
// free entries of H with H[2][2]=1. Returns ok=false when the system is
// singular (e.g. the four source points are collinear) or the solve fails —
// this is the "ProjectionIllConditioned" failure mode.
func FromControlPoints(src, dst [4]geometry.Point) (Projection, bool) {
	A := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y

		// xp = h00 x + h01 y + h02 - h20 x xp - h21 y xp
		A.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -x * xp, -y * xp})
		b.SetVec(2*i, xp)

		// yp = h10 x + h11 y + h12 - h20 x yp - h21 y yp
		A.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -x * yp, -y * yp})
		b.SetVec(2*i+1, yp)
	}

	var params mat.VecDense
	if err := params.SolveVec(A, b); err != nil {
		return Projection{}, false
	}

	h := params.RawVector().Data
	for _, v := range h {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Projection{}, false
		}
	}

	return Projection{H: [3][3]float64{
		{h[0], h[1], h[2]},
		{h[3], h[4], h[5]},
		{h[6], h[7], 1},
	}}, true
}
