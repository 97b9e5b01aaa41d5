// Command chessrectify rectifies a chessboard photo to a top-down view.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/boardvision/chessrectify/internal/config"
	"github.com/boardvision/chessrectify/internal/debugsink"
	"github.com/boardvision/chessrectify/internal/imaging"
	"github.com/boardvision/chessrectify/internal/layer"
	"github.com/boardvision/chessrectify/internal/linedetect"
	"github.com/boardvision/chessrectify/internal/segment"
	"github.com/boardvision/chessrectify/internal/warp"
)

func main() {
	log.SetFlags(0)

	debugDir := flag.String("debug", "", "write intermediate visualisations into this directory")
	layered := flag.Bool("layered", false, "iteratively re-segment until the board fills the frame")
	out := flag.String("out", "rectified.png", "output PNG path")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: chessrectify [-debug dir] [-layered] [-out path] <image>")
		os.Exit(1)
	}
	path := flag.Arg(0)

	img, err := imaging.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chessrectify: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.DebugDir = *debugDir

	gray := imaging.Prepare(img, cfg.WorkingSize)

	var sink debugsink.Sink = debugsink.Noop{}
	if cfg.DebugDir != "" {
		sink = &debugsink.File{Dir: cfg.DebugDir, Base: gray}
	}

	detector := linedetect.Default()
	warper := warp.Warper{}

	if *layered {
		final := layer.SegmentLayered(cfg, sink, detector, warper, gray)
		if err := imaging.SavePNG(*out, final); err != nil {
			fmt.Fprintf(os.Stderr, "chessrectify: %v\n", err)
			os.Exit(1)
		}
		return
	}

	result := segment.Segment(cfg, sink, detector, gray)
	if !result.OK {
		fmt.Fprintf(os.Stderr, "chessrectify: could not find a board (%s)\n", result.Kind)
		os.Exit(2)
	}

	sampling, ok := result.Proj.Inverse()
	if !ok {
		fmt.Fprintln(os.Stderr, "chessrectify: projection not invertible")
		os.Exit(2)
	}
	rectified, err := warper.Warp(gray, sampling, cfg.WorkingSize, cfg.WorkingSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chessrectify: %v\n", err)
		os.Exit(1)
	}
	if err := imaging.SavePNG(*out, rectified); err != nil {
		fmt.Fprintf(os.Stderr, "chessrectify: %v\n", err)
		os.Exit(1)
	}
}
