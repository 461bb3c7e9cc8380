package mask

import (
	"image"

	"github.com/anthonynsimon/bild/effect"

	"productvec/internal/imaging"
)

// kernelRadius converts an odd structuring-element side length to the
// radius bild's morphology operators expect (11 -> 5, 3 -> 1).
func kernelRadius(kernel int) float64 {
	if kernel < 3 {
		return 0
	}
	return float64((kernel - 1) / 2)
}

// Dilate grows the foreground by the given kernel size.
func Dilate(bin *image.Gray, kernel int) *image.Gray {
	r := kernelRadius(kernel)
	if r == 0 {
		return bin
	}
	return binarize(imaging.ToGray(effect.Dilate(bin, r)))
}

// Erode shrinks the foreground by the given kernel size.
func Erode(bin *image.Gray, kernel int) *image.Gray {
	r := kernelRadius(kernel)
	if r == 0 {
		return bin
	}
	return binarize(imaging.ToGray(effect.Erode(bin, r)))
}

// Close fills small gaps: dilate then erode.
func Close(bin *image.Gray, kernel int) *image.Gray {
	return Erode(Dilate(bin, kernel), kernel)
}

// Open removes speckle noise: erode then dilate.
func Open(bin *image.Gray, kernel int) *image.Gray {
	return Dilate(Erode(bin, kernel), kernel)
}

// Union ORs two binary masks of the same dimensions.
func Union(a, b *image.Gray) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, a.Bounds().Dx(), a.Bounds().Dy()))
	copy(out.Pix, a.Pix)
	for i, v := range b.Pix {
		if i < len(out.Pix) && v != 0 {
			out.Pix[i] = 255
		}
	}
	return out
}

// binarize snaps interpolated gray values back to {0, 255}. Morphology on
// an RGBA round-trip can leave values just off the extremes.
func binarize(g *image.Gray) *image.Gray {
	for i, v := range g.Pix {
		if v >= 128 {
			g.Pix[i] = 255
		} else {
			g.Pix[i] = 0
		}
	}
	return g
}
