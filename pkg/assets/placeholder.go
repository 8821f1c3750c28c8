package assets

import (
	"image"
	"image/color"
)

var (
	placeholderBase   = color.RGBA{0x2a, 0x2f, 0x3a, 0xff}
	placeholderStripe = color.RGBA{0x3a, 0x41, 0x50, 0xff}
)

// Placeholder returns a striped stand-in image of the given size.
func Placeholder(w, h int) *image.RGBA {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := placeholderBase
			if (x+y)/12%2 == 0 {
				c = placeholderStripe
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
