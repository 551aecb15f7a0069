package loader

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// toRGBA converts any decoded image into a tightly packed, zero-origin *image.RGBA.
// Images without alpha come out opaque.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// flipVertical mirrors the image rows in place so row 0 holds the bottom of the picture.
func flipVertical(img *image.RGBA) {
	h := img.Bounds().Dy()
	stride := img.Stride
	tmp := make([]byte, stride)
	for y := range h / 2 {
		top := img.Pix[y*stride : (y+1)*stride]
		bottom := img.Pix[(h-1-y)*stride : (h-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// mipChain returns level 0 followed by successively halved levels down to 1x1.
func mipChain(base *image.RGBA, filter draw.Interpolator) [][]byte {
	levels := [][]byte{base.Pix}
	prev := base
	w, h := base.Bounds().Dx(), base.Bounds().Dy()
	for w > 1 || h > 1 {
		w, h = max(w/2, 1), max(h/2, 1)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		filter.Scale(next, next.Bounds(), prev, prev.Bounds(), draw.Src, nil)
		levels = append(levels, next.Pix)
		prev = next
	}
	return levels
}

// checkerboard draws a size x size magenta/black board with cells x cells squares.
func checkerboard(size, cells int) *image.RGBA {
	size = max(size, 1)
	cell := max(size/max(cells, 1), 1)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	on := color.RGBA{R: 255, B: 255, A: 255}
	off := color.RGBA{A: 255}
	for y := range size {
		for x := range size {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, on)
			} else {
				img.SetRGBA(x, y, off)
			}
		}
	}
	return img
}
