// Package imaging implements the preprocessing collaborators spec.md §4.8
// step 1 fixes for reproducibility: decode, contrast boost, resize to a
// fixed working square using nearest-neighbour sampling, then grayscale
// conversion. None of this is part of the core geometry contract; the core
// only ever receives the resulting *image.Gray.
package imaging

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// Load decodes an image file from path. PNG, JPEG and TIFF are registered.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode decodes an image from r, dispatching on the registered codecs.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// SavePNG writes img to path as a PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Prepare runs the full fixed preprocessing pipeline: contrast boost,
// resize to size x size using nearest-neighbour, convert to grayscale.
// Implementations must apply exactly these steps, in this order, so the
// numeric thresholds the core pipeline assumes (eps divisor, offset
// formula, collinearity tolerance) hold at the working resolution.
func Prepare(img image.Image, size int) *image.Gray {
	boosted := ContrastBoost(img)
	resized := ResizeNearest(boosted, size, size)
	return ToGray(resized)
}

// ContrastBoost stretches each RGB channel to the full 0-255 range using
// the image's observed min/max per channel.
func ContrastBoost(img image.Image) image.Image {
	bounds := img.Bounds()
	var minR, minG, minB uint32 = 0xffff, 0xffff, 0xffff
	var maxR, maxG, maxB uint32

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			minR, maxR = minMax(r, minR, maxR)
			minG, maxG = minMax(g, minG, maxG)
			minB, maxB = minMax(b, minB, maxB)
		}
	}

	stretch := func(v, lo, hi uint32) uint8 {
		if hi <= lo {
			return uint8(v >> 8)
		}
		scaled := float64(v-lo) / float64(hi-lo) * 255.0
		if scaled < 0 {
			scaled = 0
		}
		if scaled > 255 {
			scaled = 255
		}
		return uint8(scaled)
	}

	out := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			out.SetRGBA(x, y, color.RGBA{
				R: stretch(r, minR, maxR),
				G: stretch(g, minG, maxG),
				B: stretch(b, minB, maxB),
				A: uint8(a >> 8),
			})
		}
	}
	return out
}

func minMax(v, lo, hi uint32) (uint32, uint32) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}

// ResizeNearest resizes img to w x h using nearest-neighbour sampling, per
// spec.md's "nearest triangle filter" requirement — nearest-neighbour, no
// bilinear blending, so intermediate numeric thresholds stay reproducible.
func ResizeNearest(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// ToGray converts img to 8-bit grayscale.
func ToGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}
