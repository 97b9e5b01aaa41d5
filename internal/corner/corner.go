// Package corner decides whether a pixel lies at a chessboard lattice
// corner by taking the discrete Fourier transform of the intensity ring
// around it: a true corner alternates dark-light-dark-light around its
// neighbourhood and so shows a dominant second harmonic, while an edge
// shows a dominant first harmonic and a uniform patch shows neither.
package corner

import (
	"image"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// DefaultRadius is the Chebyshev radius of the sampling ring used when the
// caller does not specify one.
const DefaultRadius = 5

// IsCorner samples the 8*r pixel ring at Chebyshev radius r around (x, y)
// in gray and reports whether it is a chessboard lattice corner. Returns
// false when the ring would extend outside the image bounds.
func IsCorner(gray *image.Gray, x, y, r int) bool {
	ring, ok := sampleRing(gray, x, y, r)
	if !ok {
		return false
	}
	m1, m2 := harmonics(ring)
	return m2 > m1
}

// sampleRing walks the square ring of Chebyshev radius r around (x, y),
// starting at the top-left corner and proceeding clockwise along each of
// the four sides, 2r samples per side, for 8r samples total. Returns
// ok=false if any sample falls outside the image.
func sampleRing(gray *image.Gray, x, y, r int) ([]float64, bool) {
	if r <= 0 {
		return nil, false
	}
	bounds := gray.Bounds()
	ring := make([]float64, 0, 8*r)

	type step struct{ dx, dy int }
	corners := [4]image.Point{
		{X: x - r, Y: y - r}, // top-left
		{X: x + r, Y: y - r}, // top-right
		{X: x + r, Y: y + r}, // bottom-right
		{X: x - r, Y: y + r}, // bottom-left
	}
	steps := [4]step{
		{dx: 1, dy: 0},
		{dx: 0, dy: 1},
		{dx: -1, dy: 0},
		{dx: 0, dy: -1},
	}

	for side := 0; side < 4; side++ {
		start := corners[side]
		st := steps[side]
		for i := 0; i < 2*r; i++ {
			p := image.Point{X: start.X + st.dx*i, Y: start.Y + st.dy*i}
			if !p.In(bounds) {
				return nil, false
			}
			ring = append(ring, float64(gray.GrayAt(p.X, p.Y).Y))
		}
	}
	return ring, true
}

// harmonics returns the magnitudes of the first two non-DC Fourier bins of
// the ring signal.
func harmonics(ring []float64) (m1, m2 float64) {
	fft := fourier.NewFFT(len(ring))
	coeff := fft.Coefficients(nil, ring)
	if len(coeff) < 3 {
		return 0, 0
	}
	return cmplxAbs(coeff[1]), cmplxAbs(coeff[2])
}

func cmplxAbs(c complex128) float64 {
	re, im := real(c), imag(c)
	return math.Sqrt(re*re + im*im)
}
