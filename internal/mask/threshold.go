package mask

import (
	"image"

	"github.com/anthonynsimon/bild/segment"

	"productvec/internal/imaging"
)

// OtsuLevel computes the global threshold that maximizes between-class
// variance of the grayscale histogram (Otsu's method). For a bimodal
// image this lands in the valley between background and object.
func OtsuLevel(gray *image.Gray) uint8 {
	var hist [256]int
	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[gray.GrayAt(x, y).Y]++
		}
	}
	if total == 0 {
		return 0
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	var best float64
	var level uint8
	for i := 0; i < 256; i++ {
		wB += float64(hist[i])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(hist[i])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > best {
			best = between
			level = uint8(i)
		}
	}
	return level
}

// Threshold binarizes a grayscale image at the Otsu level and corrects
// polarity so the foreground (object) is always the minority-pixel class.
// Without the correction a dark product on a light background and a light
// product on a dark background would produce opposite masks.
func Threshold(gray *image.Gray) *image.Gray {
	bin := imaging.ToGray(segment.Threshold(gray, OtsuLevel(gray)))
	if countOn(bin)*2 > bin.Bounds().Dx()*bin.Bounds().Dy() {
		invert(bin)
	}
	return bin
}

func countOn(bin *image.Gray) int {
	n := 0
	for _, v := range bin.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func invert(bin *image.Gray) {
	for i, v := range bin.Pix {
		if v != 0 {
			bin.Pix[i] = 0
		} else {
			bin.Pix[i] = 255
		}
	}
}
