package contour

import (
	"image"
	"math"
	"testing"
)

func square(side int) []Point {
	return []Point{{0, 0}, {side, 0}, {side, side}, {0, side}}
}

// digitizedSquare returns every boundary pixel of a side x side square,
// in trace order, the way a mask trace would produce it.
func digitizedSquare(side int) []Point {
	var pts []Point
	for x := 0; x < side; x++ {
		pts = append(pts, Point{x, 0})
	}
	for y := 1; y < side; y++ {
		pts = append(pts, Point{side - 1, y})
	}
	for x := side - 2; x >= 0; x-- {
		pts = append(pts, Point{x, side - 1})
	}
	for y := side - 2; y >= 1; y-- {
		pts = append(pts, Point{0, y})
	}
	return pts
}

func TestArea(t *testing.T) {
	if got := Area(square(10)); math.Abs(got-100) > 1e-9 {
		t.Errorf("area = %v, want 100", got)
	}
	if got := Area([]Point{{0, 0}, {5, 5}}); got != 0 {
		t.Errorf("degenerate area = %v, want 0", got)
	}
}

func TestPerimeter(t *testing.T) {
	if got := Perimeter(square(10)); math.Abs(got-40) > 1e-9 {
		t.Errorf("perimeter = %v, want 40", got)
	}
}

func TestBoundingBox(t *testing.T) {
	got := BoundingBox([]Point{{3, 7}, {10, 2}, {5, 5}})
	if want := image.Rect(3, 2, 11, 8); got != want {
		t.Errorf("box = %v, want %v", got, want)
	}
	if got := BoundingBox([]Point{{4, 4}}); got != image.Rect(4, 4, 5, 5) {
		t.Errorf("single point box = %v", got)
	}
}

func TestCentroidY(t *testing.T) {
	if got := CentroidY(square(10)); math.Abs(got-5) > 1e-9 {
		t.Errorf("centroidY = %v, want 5", got)
	}
	// Degenerate boundary falls back to the bounding-box center.
	if got := CentroidY([]Point{{0, 3}, {10, 3}}); math.Abs(got-3) > 0.6 {
		t.Errorf("degenerate centroidY = %v, want ~3", got)
	}
}

func TestConvexHull(t *testing.T) {
	pts := append(digitizedSquare(20), Point{10, 10})
	hull := ConvexHull(pts)
	if len(hull) != 4 {
		t.Fatalf("hull size = %d, want 4 corners", len(hull))
	}
	want := map[Point]bool{{0, 0}: true, {19, 0}: true, {19, 19}: true, {0, 19}: true}
	for _, p := range hull {
		if !want[p] {
			t.Errorf("unexpected hull vertex %v", p)
		}
	}
}

func TestApproximate_Square(t *testing.T) {
	got := Approximate(digitizedSquare(20), 2)
	if len(got) != 4 {
		t.Errorf("vertices = %d (%v), want 4", len(got), got)
	}
}

func TestApproximate_KeepsTinyInput(t *testing.T) {
	pts := []Point{{0, 0}, {5, 0}}
	got := Approximate(pts, 2)
	if len(got) != 2 {
		t.Errorf("vertices = %d, want input unchanged", len(got))
	}
}

func TestConvexityDefects_Cross(t *testing.T) {
	pts := []Point{
		{30, 0}, {60, 0}, {60, 30}, {90, 30}, {90, 60}, {60, 60},
		{60, 90}, {30, 90}, {30, 60}, {0, 60}, {0, 30}, {30, 30},
	}
	defects := ConvexityDefects(pts, 3)
	if len(defects) != 4 {
		t.Fatalf("defects = %d, want 4", len(defects))
	}
	for _, d := range defects {
		if d.Depth < 20 || d.Depth > 23 {
			t.Errorf("defect depth = %v, want ~21.2", d.Depth)
		}
	}
}

func TestConvexityDefects_ConvexShape(t *testing.T) {
	if got := ConvexityDefects(digitizedSquare(20), 3); len(got) != 0 {
		t.Errorf("defects on a square = %d, want 0", len(got))
	}
}
