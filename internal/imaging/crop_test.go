package imaging

import (
	"image"
	"testing"
)

func TestCropPadded(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))

	cropped, off, err := CropPadded(img, image.Rect(20, 20, 60, 50), 10)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if off.X != 10 || off.Y != 10 {
		t.Errorf("offset = (%d,%d), want (10,10)", off.X, off.Y)
	}
	if off.Width != 60 || off.Height != 50 {
		t.Errorf("window = %dx%d, want 60x50", off.Width, off.Height)
	}
	if cropped.Bounds().Dx() != 60 || cropped.Bounds().Dy() != 50 {
		t.Errorf("cropped = %v", cropped.Bounds())
	}
}

func TestCropPadded_ClampsToImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))

	_, off, err := CropPadded(img, image.Rect(0, 0, 30, 30), 10)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if off.X != 0 || off.Y != 0 {
		t.Errorf("offset = (%d,%d), want clamped to origin", off.X, off.Y)
	}
	if off.Width != 40 || off.Height != 40 {
		t.Errorf("window = %dx%d, want 40x40", off.Width, off.Height)
	}
}

func TestCropPadded_OutsideBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 80))
	if _, _, err := CropPadded(img, image.Rect(200, 200, 250, 250), 5); err == nil {
		t.Fatal("expected error for a window outside the image")
	}
}

func TestCropOffset_ShiftAndContains(t *testing.T) {
	off := CropOffset{X: 30, Y: 20, Width: 50, Height: 40}

	shifted := off.Shift(image.Rect(40, 30, 60, 50))
	if want := image.Rect(10, 10, 30, 30); shifted != want {
		t.Errorf("shifted = %v, want %v", shifted, want)
	}
	if !off.Contains(shifted) {
		t.Error("rect inside the window reported as outside")
	}
	if off.Contains(off.Shift(image.Rect(100, 100, 120, 120))) {
		t.Error("rect beyond the window reported as visible")
	}
}

func TestResize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	out := Resize(img, 20, 0)
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 10 {
		t.Errorf("resized = %v, want 20x10", out.Bounds())
	}
}
