package palette

import (
	"image"
	"image/color"
	"testing"

	"productvec/internal/contour"
	"productvec/internal/region"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.SetRGBA(x, y, c)
		}
	}
	return m
}

func fillRGBA(m *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.SetRGBA(x, y, c)
		}
	}
}

func squareOutline(r image.Rectangle) []contour.Point {
	return []contour.Point{
		{X: r.Min.X, Y: r.Min.Y},
		{X: r.Max.X - 1, Y: r.Min.Y},
		{X: r.Max.X - 1, Y: r.Max.Y - 1},
		{X: r.Min.X, Y: r.Max.Y - 1},
	}
}

func TestRegionColor_ScanlineFill(t *testing.T) {
	img := solid(200, 200, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	b := image.Rect(50, 50, 150, 150)
	fillRGBA(img, b, color.RGBA{R: 255, A: 255})

	r := &region.Region{Bounds: b, Outline: squareOutline(b)}
	got := New(img).RegionColor(r)
	if got != "#ff0000" {
		t.Errorf("RegionColor = %q, want #ff0000", got)
	}
}

func TestRegionColor_TriangleIgnoresBackground(t *testing.T) {
	// A triangle occupying half its bounding box: the other half is
	// poisoned green, which a box-mean would pick up.
	img := solid(200, 200, color.RGBA{G: 255, A: 255})
	tri := []contour.Point{{X: 50, Y: 50}, {X: 149, Y: 50}, {X: 50, Y: 149}}
	for y := 50; y < 150; y++ {
		for x := 50; x < 150; x++ {
			if x-50+y-50 < 99 {
				img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
			}
		}
	}

	r := &region.Region{Bounds: image.Rect(50, 50, 150, 150), Outline: tri}
	got := New(img).RegionColor(r)
	if got != "#ff0000" {
		t.Errorf("RegionColor = %q, want #ff0000", got)
	}
}

func TestRegionColor_CircleControlUsesRing(t *testing.T) {
	// Bright center, dark rim: the ring sample must report the rim.
	img := solid(200, 200, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			d2 := (x-100)*(x-100) + (y-100)*(y-100)
			if d2 <= 40*40 && d2 >= 28*28 {
				img.SetRGBA(x, y, color.RGBA{R: 32, G: 32, B: 32, A: 255})
			}
		}
	}

	r := &region.Region{
		Role:    region.CircleControl,
		CenterX: 100, CenterY: 100, Radius: 40,
		Bounds: image.Rect(60, 60, 140, 140),
	}
	got := New(img).RegionColor(r)
	if got != "#202020" {
		t.Errorf("RegionColor = %q, want rim color #202020", got)
	}
}

func TestGradientStops_Vertical(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		v := uint8(255 - y*2)
		for x := 0; x < 100; x++ {
			img.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}

	stops := New(img).GradientStops(image.Rect(0, 0, 100, 100), 4)
	if len(stops) != 4 {
		t.Fatalf("got %d stops, want 4", len(stops))
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].Offset <= stops[i-1].Offset {
			t.Errorf("offsets not increasing: %v", stops)
		}
		if stops[i].Color >= stops[i-1].Color {
			t.Errorf("stop %d color %s not darker than %s", i, stops[i].Color, stops[i-1].Color)
		}
	}
}

func TestGradientStops_DegenerateBox(t *testing.T) {
	img := solid(10, 10, color.RGBA{A: 255})
	if stops := New(img).GradientStops(image.Rect(0, 0, 10, 1), 4); stops != nil {
		t.Errorf("got %v stops from a 1px-high box, want nil", stops)
	}
}

func TestDominant(t *testing.T) {
	img := solid(100, 100, color.RGBA{B: 255, A: 255})
	fillRGBA(img, image.Rect(0, 0, 100, 10), color.RGBA{R: 255, A: 255})

	got := New(img).Dominant(image.Rect(0, 0, 100, 100), 0.1, 5)
	if got != "#0000ff" {
		t.Errorf("Dominant = %q, want #0000ff", got)
	}
}
