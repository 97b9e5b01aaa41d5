// Package segment composes the one-pass rectification pipeline: preprocess
// (already done by the caller) -> line intersections -> lattice extraction
// -> DBSCAN clustering -> convex hull -> minimum-area bounding quad ->
// refine -> projection. It is the "segment driver" of spec.md §4.8 and
// never touches cgo or image codecs directly — those live behind the
// LineDetector interface.
package segment

import (
	"image"
	"math"

	"github.com/boardvision/chessrectify/internal/cluster"
	"github.com/boardvision/chessrectify/internal/config"
	"github.com/boardvision/chessrectify/internal/debugsink"
	"github.com/boardvision/chessrectify/internal/hull"
	"github.com/boardvision/chessrectify/internal/lattice"
	"github.com/boardvision/chessrectify/internal/mbb"
	"github.com/boardvision/chessrectify/internal/projection"
	"github.com/boardvision/chessrectify/internal/refine"
	"github.com/boardvision/chessrectify/pkg/geometry"
)

// LineDetector is the "detect_lines" external collaborator contract.
type LineDetector interface {
	DetectLines(gray *image.Gray) ([]geometry.Line, error)
}

// ErrKind enumerates the four failure modes of spec.md §7. There is no
// retry policy and no stack trace: every failure collapses to "no
// projection".
type ErrKind int

const (
	// OK is the zero value for a successful segment pass.
	OK ErrKind = iota
	InsufficientPoints
	NoCluster
	DegenerateQuad
	ProjectionIllConditioned
)

func (k ErrKind) String() string {
	switch k {
	case OK:
		return "ok"
	case InsufficientPoints:
		return "insufficient points"
	case NoCluster:
		return "no cluster"
	case DegenerateQuad:
		return "degenerate quad"
	case ProjectionIllConditioned:
		return "projection ill-conditioned"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a single segment pass.
type Result struct {
	Proj  projection.Projection
	Error float64 // 1 - mbb_area/input_area
	Kind  ErrKind
	OK    bool
}

// Segment runs one pass of the pipeline over gray using lines from
// detector, per spec.md §4.8.
func Segment(cfg config.Config, sink debugsink.Sink, detector LineDetector, gray *image.Gray) Result {
	if sink == nil {
		sink = debugsink.Noop{}
	}

	w := float64(gray.Bounds().Dx())
	h := float64(gray.Bounds().Dy())

	lines, err := detector.DetectLines(gray)
	if err != nil || len(lines) < 2 {
		return Result{Kind: InsufficientPoints}
	}
	sink.Lines("lines", lines)

	intersections := allIntersections(lines)

	merged := lattice.Extract(gray, intersections, cfg.MergeRadius)
	sink.Points("lattice", merged)
	if len(merged) < 4 {
		return Result{Kind: InsufficientPoints}
	}

	hullPts := hull.ConvexHull(merged)
	hullArea := hull.Area(hullPts)
	if hullArea <= 0 {
		return Result{Kind: InsufficientPoints}
	}

	eps := math.Sqrt(hullArea / cfg.ClusterEpsDivisor)
	labels := cluster.Labels(merged, cluster.Params{Eps: eps, MinPts: cfg.ClusterMinPts})
	_, members, ok := cluster.LargestCluster(labels)
	if !ok {
		return Result{Kind: NoCluster}
	}

	clusterPts := make([]geometry.Point, len(members))
	for i, idx := range members {
		clusterPts[i] = merged[idx]
	}
	sink.Points("cluster", clusterPts)

	clusterHull := hull.ConvexHull(clusterPts)

	quad, quadOK := quadFromHull(clusterHull)
	if !quadOK {
		return Result{Kind: DegenerateQuad}
	}
	sink.Quad("mbb", quad)

	inputArea := w * h
	mbbArea := math.Abs(quad.Area())
	errMetric := 1 - mbbArea/inputArea
	offset := math.Max(math.Sqrt(errMetric*mbbArea), math.Sqrt(mbbArea)/6)

	offsetQuad := refine.Offset(quad, offset/cfg.OffsetDivisor)
	snapped := refine.Snap(offsetQuad, merged)
	sink.Quad("refined", snapped)

	dst := [4]geometry.Point{
		{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h},
	}
	proj, projOK := projection.FromControlPoints([4]geometry.Point(snapped), dst)
	if !projOK {
		return Result{Kind: ProjectionIllConditioned, Error: errMetric}
	}

	return Result{Proj: proj, Error: errMetric, OK: true}
}

// allIntersections computes every pairwise line intersection, including
// the self-pair (which always returns none via det=0 and is skipped).
// Results are returned unfiltered; the lattice extractor clips them.
func allIntersections(lines []geometry.Line) []geometry.Point {
	var out []geometry.Point
	for i := range lines {
		for j := i; j < len(lines); j++ {
			if p, ok := lines[i].Intersect(lines[j]); ok {
				out = append(out, p)
			}
		}
	}
	return out
}

// quadFromHull returns the hull verbatim, canonicalised to [TL, TR, BR, BL],
// when it is already a four-vertex quad: the common case of an obliquely
// photographed board, whose largest-cluster hull is already the four true
// corners and must not be rounded out to its minimum-area enclosing
// rectangle. Otherwise it falls back to the minimum-area bounding quad,
// which requires at least 3 hull vertices.
func quadFromHull(clusterHull []geometry.Point) (geometry.Quad, bool) {
	if len(clusterHull) == 4 {
		return mbb.Canonicalize(geometry.Quad(clusterHull)), true
	}
	if len(clusterHull) < 3 {
		return geometry.Quad{}, false
	}
	return mbb.MinAreaQuad(clusterHull)
}
