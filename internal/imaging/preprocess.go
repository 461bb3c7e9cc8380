package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
)

// Grayscale converts an image to single-channel grayscale using the
// ITU-R BT.601 luminance weights (0.299*R + 0.587*G + 0.114*B).
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			v := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			gray.SetGray(x, y, color.Gray{Y: uint8(v + 0.5)})
		}
	}
	return gray
}

// Blur applies a Gaussian blur with the given radius. A radius of zero or
// less returns the input unchanged.
func Blur(gray *image.Gray, radius float64) *image.Gray {
	if radius <= 0 {
		return gray
	}
	return ToGray(blur.Gaussian(gray, radius))
}

// ToGray converts any image to *image.Gray without changing pixel values
// for images that are already gray. bild operations return *image.RGBA, so
// mask code round-trips through this after each one.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			gray.SetGray(x, y, c)
		}
	}
	return gray
}
