package debugsink

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/boardvision/chessrectify/pkg/geometry"
)

// File writes one PNG per call into Dir, named "<call-index>-<stage>.png",
// overlaying the recorded geometry on top of Base. It is wired up by the
// CLI only when -debug names a directory.
type File struct {
	Dir   string
	Base  image.Image
	calls int
}

func (f *File) Points(stage string, pts []geometry.Point) {
	img := f.canvas()
	for _, p := range pts {
		drawCross(img, p, color.RGBA{R: 255, A: 255})
	}
	f.write(stage, img)
}

func (f *File) Lines(stage string, lines []geometry.Line) {
	img := f.canvas()
	for _, l := range lines {
		drawLine(img, l, color.RGBA{G: 255, A: 255})
	}
	f.write(stage, img)
}

func (f *File) Quad(stage string, q geometry.Quad) {
	img := f.canvas()
	for i := 0; i < 4; i++ {
		l := geometry.Line{Start: q[i], End: q[(i+1)%4]}
		drawLine(img, l, color.RGBA{B: 255, A: 255})
	}
	f.write(stage, img)
}

func (f *File) canvas() *image.RGBA {
	bounds := f.Base.Bounds()
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, f.Base, bounds.Min, draw.Src)
	return img
}

func (f *File) write(stage string, img image.Image) {
	f.calls++
	name := fmt.Sprintf("%02d-%s.png", f.calls, stage)
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return
	}
	out, err := os.Create(filepath.Join(f.Dir, name))
	if err != nil {
		return
	}
	defer out.Close()
	png.Encode(out, img)
}

func drawCross(img *image.RGBA, p geometry.Point, c color.Color) {
	const r = 3
	x, y := int(p.X), int(p.Y)
	for d := -r; d <= r; d++ {
		setIfInBounds(img, x+d, y, c)
		setIfInBounds(img, x, y+d, c)
	}
}

func drawLine(img *image.RGBA, l geometry.Line, c color.Color) {
	steps := int(l.Start.Dist(l.End)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := l.Start.X + t*(l.End.X-l.Start.X)
		y := l.Start.Y + t*(l.End.Y-l.Start.Y)
		setIfInBounds(img, int(x), int(y), c)
	}
}

func setIfInBounds(img *image.RGBA, x, y int, c color.Color) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}
