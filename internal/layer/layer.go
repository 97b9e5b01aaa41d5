// Package layer implements the iterative "layer driver" of spec.md §4.9:
// rectify once, warp by the inverse projection, and repeat until the board
// fills the frame or the iteration cap is hit.
package layer

import (
	"image"

	"github.com/boardvision/chessrectify/internal/config"
	"github.com/boardvision/chessrectify/internal/debugsink"
	"github.com/boardvision/chessrectify/internal/projection"
	"github.com/boardvision/chessrectify/internal/segment"
)

// Warper is the "warp" external collaborator contract.
type Warper interface {
	Warp(gray *image.Gray, proj projection.Projection, w, h int) (*image.Gray, error)
}

// SegmentLayered repeats segment.Segment on the current image, warping by
// the inverse projection after each successful pass, until either no
// projection is found, the error metric drops below cfg.LayerStopError, or
// cfg.LayerMaxIterations is reached. It returns the final image: the last
// successfully warped iterate, or the input unchanged if no pass ever
// succeeded.
func SegmentLayered(cfg config.Config, sink debugsink.Sink, detector segment.LineDetector, warper Warper, gray *image.Gray) *image.Gray {
	if sink == nil {
		sink = debugsink.Noop{}
	}

	current := gray
	for iter := 0; iter < cfg.LayerMaxIterations; iter++ {
		result := segment.Segment(cfg, sink, detector, current)
		if !result.OK {
			return current
		}

		inv, ok := result.Proj.Inverse()
		if !ok {
			return current
		}

		w := current.Bounds().Dx()
		h := current.Bounds().Dy()
		next, err := warper.Warp(current, inv, w, h)
		if err != nil {
			return current
		}
		current = next

		if result.Error < cfg.LayerStopError {
			return current
		}
	}
	return current
}
