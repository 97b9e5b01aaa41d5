// Package warp implements the "warp" external collaborator: bilinear
// perspective resampling given a Projection, generalising the teacher's
// WarpAffine (2x3) to a full 3x3 projective matrix.
//
// Contract (matching spec.md §6 and the layer driver's "warp by the inverse
// projection" language): the Projection passed to Warp is the OUTPUT->INPUT
// sampling transform — Warp produces an image where output(x,y) samples
// input at sample.Apply(x,y). gocv's WarpPerspective instead takes the
// forward INPUT->OUTPUT matrix and inverts it internally, so this
// implementation inverts the given sample transform once before handing it
// to gocv, restoring the forward matrix gocv expects.
package warp

import (
	"fmt"
	"image"

	"github.com/boardvision/chessrectify/internal/projection"

	"gocv.io/x/gocv"
)

// Warper applies a sampling Projection to a grayscale image via gocv's
// WarpPerspective, filling out-of-bounds pixels with 0.
type Warper struct{}

// Warp implements layer.Warper.
func (Warper) Warp(gray *image.Gray, sample projection.Projection, w, h int) (*image.Gray, error) {
	forward, ok := sample.Inverse()
	if !ok {
		return nil, fmt.Errorf("warp: sampling projection is not invertible")
	}

	src, err := gocv.NewMatFromBytes(gray.Bounds().Dy(), gray.Bounds().Dx(), gocv.MatTypeCV8U, gray.Pix)
	if err != nil {
		return nil, fmt.Errorf("warp: convert to mat: %w", err)
	}
	defer src.Close()

	homography := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	defer homography.Close()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			homography.SetDoubleAt(i, j, forward.H[i][j])
		}
	}

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.WarpPerspectiveWithParams(src, &dst, homography, image.Point{X: w, Y: h},
		gocv.InterpolationLinear, gocv.BorderConstant, gocv.NewScalar(0, 0, 0, 0))

	out := image.NewGray(image.Rect(0, 0, w, h))
	copy(out.Pix, dst.ToBytes())
	return out, nil
}
