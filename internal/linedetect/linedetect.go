// Package linedetect implements the "detect_lines" external collaborator:
// Canny edge detection followed by probabilistic Hough line extraction,
// keeping only segments whose endpoints both lie inside the image rectangle
// (segments are dropped, not clipped). The core segment driver never imports
// this package directly — it depends on the LineDetector interface so it
// can be driven by this implementation, a stub, or a recorded fixture.
package linedetect

import (
	"fmt"
	"image"

	"github.com/boardvision/chessrectify/pkg/geometry"

	"gocv.io/x/gocv"
)

// Detector runs Canny + probabilistic Hough over the grayscale working
// image, grounded on the teacher's Canny/Dilate sequence in its board
// corner detector, generalised from contour extraction to line extraction.
type Detector struct {
	VoteThreshold  int
	SuppressionGap int
	MinLineLength  int
}

// Default returns a Detector configured with spec.md's external-contract
// defaults (vote_threshold=100, suppression_radius=20).
func Default() Detector {
	return Detector{VoteThreshold: 100, SuppressionGap: 20, MinLineLength: 20}
}

// DetectLines implements segment.LineDetector.
func (d Detector) DetectLines(gray *image.Gray) ([]geometry.Line, error) {
	mat, err := gocv.NewMatFromBytes(gray.Bounds().Dy(), gray.Bounds().Dx(), gocv.MatTypeCV8U, gray.Pix)
	if err != nil {
		return nil, fmt.Errorf("linedetect: convert to mat: %w", err)
	}
	defer mat.Close()

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(mat, &edges, 50, 150)

	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLinesPWithParams(edges, &lines, 1, 3.14159265/180, d.VoteThreshold, float32(d.MinLineLength), float32(d.SuppressionGap))

	w, h := float64(gray.Bounds().Dx()), float64(gray.Bounds().Dy())
	out := make([]geometry.Line, 0, lines.Rows())
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		x1, y1 := float64(v[0]), float64(v[1])
		x2, y2 := float64(v[2]), float64(v[3])

		start := geometry.Point{X: x1, Y: y1}
		end := geometry.Point{X: x2, Y: y2}
		if !geometry.InBounds(start, w, h) || !geometry.InBounds(end, w, h) {
			continue
		}
		out = append(out, geometry.Line{Start: start, End: end})
	}
	return out, nil
}
