package mask

import (
	"image/color"
	"testing"
)

func TestEdgeDetect_StepEdge(t *testing.T) {
	img := blank(40, 40)
	setRect(img, 20, 0, 40, 40)

	out := EdgeDetect(img, 50, 150)

	found := false
	for x := 18; x <= 21; x++ {
		if out.GrayAt(x, 20).Y == 255 {
			found = true
		}
	}
	if !found {
		t.Error("no edge marked at the step")
	}
	if out.GrayAt(5, 20).Y != 0 || out.GrayAt(35, 20).Y != 0 {
		t.Error("edge marked in a flat area")
	}
}

func TestEdgeDetect_FlatImage(t *testing.T) {
	img := blank(30, 30)
	for i := range img.Pix {
		img.Pix[i] = 128
	}
	if got := onCount(EdgeDetect(img, 50, 150)); got != 0 {
		t.Errorf("flat image produced %d edge pixels", got)
	}
}

// Hysteresis: a weak gradient survives only when a strong edge touches it.
func TestEdgeDetect_Hysteresis(t *testing.T) {
	img := blank(40, 40)
	// Weak step: 0 -> 30 gives a Sobel magnitude of 120, between the
	// thresholds, with no strong edge anywhere.
	for y := 0; y < 40; y++ {
		for x := 20; x < 40; x++ {
			img.SetGray(x, y, color.Gray{Y: 30})
		}
	}
	if got := onCount(EdgeDetect(img, 50, 150)); got != 0 {
		t.Errorf("weak edge kept without a strong neighbor: %d pixels", got)
	}
}
