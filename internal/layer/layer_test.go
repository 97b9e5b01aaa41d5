package layer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boardvision/chessrectify/internal/config"
	"github.com/boardvision/chessrectify/internal/debugsink"
	"github.com/boardvision/chessrectify/internal/projection"
	"github.com/boardvision/chessrectify/pkg/geometry"
)

// stubDetector always fails, forcing SegmentLayered to stop on its first
// pass and return the input image unchanged.
type stubDetector struct{}

func (stubDetector) DetectLines(*image.Gray) ([]geometry.Line, error) {
	return nil, nil
}

type countingWarper struct {
	calls int
}

func (w *countingWarper) Warp(gray *image.Gray, proj projection.Projection, width, height int) (*image.Gray, error) {
	w.calls++
	return gray, nil
}

func TestSegmentLayeredStopsWhenNoProjectionFound(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	cfg := config.Default()
	warper := &countingWarper{}

	out := SegmentLayered(cfg, debugsink.Noop{}, stubDetector{}, warper, gray)

	assert.Same(t, gray, out)
	assert.Equal(t, 0, warper.calls)
}

func TestSegmentLayeredRespectsIterationCap(t *testing.T) {
	// A detector that always succeeds but never reports a low enough error
	// must stop exactly at LayerMaxIterations, not loop forever.
	const cells, cellSize = 6, 20
	gray := chessboardImage(cells, cellSize)

	cfg := config.Default()
	cfg.WorkingSize = cells * cellSize
	cfg.ClusterEpsDivisor = 2
	cfg.ClusterMinPts = 3
	cfg.LayerMaxIterations = 3
	cfg.LayerStopError = -1 // unreachable: forces the loop to run to the cap

	det := gridLines{cells: cells, cellSize: cellSize}
	warper := &countingWarper{}

	SegmentLayered(cfg, debugsink.Noop{}, det, warper, gray)
	assert.Equal(t, cfg.LayerMaxIterations, warper.calls)
}

// gridLines is a fake LineDetector returning the exact horizontal and
// vertical lines of a cells x cells checkerboard.
type gridLines struct {
	cells, cellSize int
}

func (g gridLines) DetectLines(gray *image.Gray) ([]geometry.Line, error) {
	size := float64(g.cells * g.cellSize)
	var lines []geometry.Line
	for i := 0; i <= g.cells; i++ {
		c := float64(i * g.cellSize)
		lines = append(lines, geometry.Line{Start: geometry.Pt(c, 0), End: geometry.Pt(c, size)})
		lines = append(lines, geometry.Line{Start: geometry.Pt(0, c), End: geometry.Pt(size, c)})
	}
	return lines, nil
}

// chessboardImage renders a synthetic checkerboard of cells x cells squares,
// cellSize pixels each, so every interior grid vertex is a genuine corner
// under the DFT ring test.
func chessboardImage(cells, cellSize int) *image.Gray {
	size := cells * cellSize
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cx, cy := x/cellSize, y/cellSize
			v := uint8(255)
			if (cx+cy)%2 == 0 {
				v = 0
			}
			img.Pix[img.PixOffset(x, y)] = v
		}
	}
	return img
}

const backgroundGray = 200

// marginBoardImage renders a boardCells x boardCells checkerboard of
// cellSize pixels per square, centred in a frameSize x frameSize frame and
// surrounded by one extra ring of marginCells alternating squares, with flat
// background beyond that. The margin ring gives the board's own four
// corners full alternating checkerboard context on every side, so they pass
// the corner test instead of being indistinguishable from a plain edge
// against flat background.
func marginBoardImage(frameSize, boardCells, marginCells, cellSize int) (*image.Gray, []geometry.Line) {
	totalCells := boardCells + 2*marginCells
	textureSize := totalCells * cellSize
	offset := (frameSize - textureSize) / 2

	img := image.NewGray(image.Rect(0, 0, frameSize, frameSize))
	for y := 0; y < frameSize; y++ {
		for x := 0; x < frameSize; x++ {
			v := uint8(backgroundGray)
			tx, ty := x-offset, y-offset
			if tx >= 0 && tx < textureSize && ty >= 0 && ty < textureSize {
				cx, cy := tx/cellSize, ty/cellSize
				v = 255
				if (cx+cy)%2 == 0 {
					v = 0
				}
			}
			img.Pix[img.PixOffset(x, y)] = v
		}
	}

	var lines []geometry.Line
	for i := 0; i <= totalCells; i++ {
		c := float64(offset + i*cellSize)
		lo, hi := float64(offset), float64(offset+textureSize)
		lines = append(lines, geometry.Line{Start: geometry.Pt(c, lo), End: geometry.Pt(c, hi)})
		lines = append(lines, geometry.Line{Start: geometry.Pt(lo, c), End: geometry.Pt(hi, c)})
	}
	return img, lines
}

// boardPixelFraction returns the fraction of gray's pixels that are part of
// the checkerboard (neither pure black nor pure white background-adjacent
// samples are excluded; only the flat backgroundGray fill counts as
// non-board).
func boardPixelFraction(gray *image.Gray) float64 {
	var board int
	for _, v := range gray.Pix {
		if v != backgroundGray {
			board++
		}
	}
	return float64(board) / float64(len(gray.Pix))
}

// fixedLines is a fake LineDetector that always returns the same
// precomputed lines, regardless of which image it is asked about.
type fixedLines struct {
	lines []geometry.Line
}

func (f fixedLines) DetectLines(*image.Gray) ([]geometry.Line, error) {
	return f.lines, nil
}

// resamplingWarper is a pure-Go stand-in for the real cgo-backed warp: it
// backward-samples gray through proj with nearest-neighbour lookup, filling
// any sample that lands outside gray's bounds with flat background. Unlike
// countingWarper, it actually resamples pixels, which is required to
// observe genuine iteration-over-iteration convergence.
type resamplingWarper struct {
	calls int
}

func (w *resamplingWarper) Warp(gray *image.Gray, proj projection.Projection, width, height int) (*image.Gray, error) {
	w.calls++
	out := image.NewGray(image.Rect(0, 0, width, height))
	bounds := gray.Bounds()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src := proj.Apply(geometry.Pt(float64(x)+0.5, float64(y)+0.5))
			p := image.Point{X: int(src.X), Y: int(src.Y)}
			v := uint8(backgroundGray)
			if p.In(bounds) {
				v = gray.GrayAt(p.X, p.Y).Y
			}
			out.Pix[out.PixOffset(x, y)] = v
		}
	}
	return out, nil
}

// TestSegmentLayeredConvergesOnSmallBoard checks that a board occupying a
// small fraction of the frame fills most of it within a few iterations,
// each pass rectifying and zooming in on the detected board.
func TestSegmentLayeredConvergesOnSmallBoard(t *testing.T) {
	const frameSize, boardCells, marginCells, cellSize = 200, 4, 1, 25
	gray, lines := marginBoardImage(frameSize, boardCells, marginCells, cellSize)

	// The board itself (excluding the margin ring) occupies exactly a
	// quarter of the frame: (boardCells*cellSize)^2 / frameSize^2.
	before := float64(boardCells*cellSize*boardCells*cellSize) / float64(frameSize*frameSize)
	assert.InDelta(t, 0.25, before, 1e-9)

	cfg := config.Default()
	cfg.ClusterEpsDivisor = 2
	cfg.ClusterMinPts = 3
	cfg.LayerMaxIterations = 3
	cfg.LayerStopError = 0.5

	warper := &resamplingWarper{}
	det := fixedLines{lines}
	out := SegmentLayered(cfg, debugsink.Noop{}, det, warper, gray)

	assert.GreaterOrEqual(t, warper.calls, 1, "expected at least one zoom pass")
	assert.LessOrEqual(t, warper.calls, cfg.LayerMaxIterations)

	after := boardPixelFraction(out)
	assert.GreaterOrEqual(t, after, 0.8, "expected the board to fill at least 80%% of the frame after layering")
}
