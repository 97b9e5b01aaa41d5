package lattice

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boardvision/chessrectify/pkg/geometry"
)

func checkerboard(w, h, cx, cy int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			left := x < cx
			top := y < cy
			v := uint8(255)
			if left == top {
				v = 0
			}
			img.Pix[img.PixOffset(x, y)] = v
		}
	}
	return img
}

func TestMergeDuplicatesCollapsesCluster(t *testing.T) {
	pts := []geometry.Point{
		{X: 10, Y: 10},
		{X: 11, Y: 10},
		{X: 10, Y: 11},
		{X: 100, Y: 100},
	}
	merged := mergeDuplicates(pts, DefaultMergeRadius)
	assert.Len(t, merged, 2)
}

func TestMergeDuplicatesNoOverlap(t *testing.T) {
	pts := []geometry.Point{{X: 0, Y: 0}, {X: 50, Y: 50}}
	merged := mergeDuplicates(pts, 1)
	assert.Len(t, merged, 2)
}

func TestExtractFiltersNonCorners(t *testing.T) {
	img := checkerboard(20, 20, 10, 10)
	candidates := []geometry.Point{
		{X: 10, Y: 10}, // true corner
		{X: 2, Y: 2},   // interior of a flat quadrant, not a corner
	}
	out := Extract(img, candidates, DefaultMergeRadius)
	assert.Len(t, out, 1)
	assert.InDelta(t, 10, out[0].X, 1e-9)
	assert.InDelta(t, 10, out[0].Y, 1e-9)
}
