// Package debugsink provides the accept-draw-operations capability the
// design notes call for in place of a process-wide debug environment flag:
// geometry code calls a Sink, and only the CLI decides whether that sink
// writes anything.
package debugsink

import "github.com/boardvision/chessrectify/pkg/geometry"

// Sink accepts intermediate visualisation data tagged by pipeline stage.
// Implementations must not affect pipeline results — this is observational
// only.
type Sink interface {
	Points(stage string, pts []geometry.Point)
	Lines(stage string, lines []geometry.Line)
	Quad(stage string, q geometry.Quad)
}

// Noop discards everything. It is the default sink used whenever debugging
// is not explicitly requested.
type Noop struct{}

func (Noop) Points(string, []geometry.Point) {}
func (Noop) Lines(string, []geometry.Line)   {}
func (Noop) Quad(string, geometry.Quad)      {}
