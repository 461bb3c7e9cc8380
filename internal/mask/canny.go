package mask

import (
	"image"
	"math"
)

// EdgeDetect runs Canny-style edge detection on an already blurred
// grayscale image and returns a binary mask with edges at 255.
//
// Stages: Sobel gradients, non-maximum suppression to thin edges to one
// pixel, then double-threshold hysteresis. Pixels above high are strong
// edges, pixels between low and high survive only next to a strong edge.
func EdgeDetect(gray *image.Gray, low, high int) *image.Gray {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	magnitude := make([]float64, width*height)
	direction := make([]float64, width*height)

	at := func(x, y int) float64 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return float64(gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gx := -at(x-1, y-1) + at(x+1, y-1) +
				-2*at(x-1, y) + 2*at(x+1, y) +
				-at(x-1, y+1) + at(x+1, y+1)
			gy := -at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1) +
				at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)
			magnitude[y*width+x] = math.Hypot(gx, gy)
			direction[y*width+x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression along the gradient direction.
	suppressed := make([]float64, width*height)
	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			angle := direction[i]
			mag := magnitude[i]

			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1, n2 = magnitude[i-1], magnitude[i+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1, n2 = magnitude[i-width+1], magnitude[i+width-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1, n2 = magnitude[i-width], magnitude[i+width]
			default:
				n1, n2 = magnitude[i-width-1], magnitude[i+width+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[i] = mag
			}
		}
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	lowT := float64(low)
	highT := float64(high)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := suppressed[y*width+x]
			if v >= highT {
				out.Pix[y*width+x] = 255
				continue
			}
			if v < lowT {
				continue
			}
			// Weak edge: keep only when touching a strong edge.
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					ny := clamp(y+dy, 0, height-1)
					nx := clamp(x+dx, 0, width-1)
					if suppressed[ny*width+nx] >= highT {
						out.Pix[y*width+x] = 255
					}
				}
			}
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
