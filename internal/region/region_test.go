package region

import (
	"image"
	"testing"

	"productvec/internal/contour"
)

// Test fixtures are drawn directly into binary masks and traced, so every
// descriptor a test asserts on went through the same path production data
// does.

func newMask(w, h int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, w, h))
}

func fillRect(m *image.Gray, r image.Rectangle, v uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Pix[m.PixOffset(x, y)] = v
		}
	}
}

func fillDisc(m *image.Gray, cx, cy, r int, v uint8) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				m.Pix[m.PixOffset(x, y)] = v
			}
		}
	}
}

func fillRoundedRect(m *image.Gray, r image.Rectangle, rad int, v uint8) {
	fillRect(m, image.Rect(r.Min.X+rad, r.Min.Y, r.Max.X-rad, r.Max.Y), v)
	fillRect(m, image.Rect(r.Min.X, r.Min.Y+rad, r.Max.X, r.Max.Y-rad), v)
	fillDisc(m, r.Min.X+rad, r.Min.Y+rad, rad, v)
	fillDisc(m, r.Max.X-1-rad, r.Min.Y+rad, rad, v)
	fillDisc(m, r.Min.X+rad, r.Max.Y-1-rad, rad, v)
	fillDisc(m, r.Max.X-1-rad, r.Max.Y-1-rad, rad, v)
}

// traceRegions traces the mask and returns the unclassified region list.
func traceRegions(t *testing.T, m *image.Gray) []Region {
	t.Helper()
	cs := contour.Trace(m, 10)
	if len(cs) == 0 {
		t.Fatal("no contours traced from fixture mask")
	}
	return FromContours(cs)
}

// soleRegion traces a mask expected to contain exactly one boundary.
func soleRegion(t *testing.T, m *image.Gray) *Region {
	t.Helper()
	regions := traceRegions(t, m)
	if len(regions) != 1 {
		t.Fatalf("traced %d regions, want 1", len(regions))
	}
	return &regions[0]
}

func TestFromContours_CarriesTopology(t *testing.T) {
	m := newMask(200, 200)
	fillRect(m, image.Rect(20, 20, 180, 180), 255)
	fillDisc(m, 100, 100, 30, 0) // hole in the plate

	regions := traceRegions(t, m)
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}

	var outer, hole *Region
	for i := range regions {
		if regions[i].Hole {
			hole = &regions[i]
		} else {
			outer = &regions[i]
		}
	}
	if outer == nil || hole == nil {
		t.Fatal("expected one outer boundary and one hole")
	}
	if outer.ParentID != -1 {
		t.Errorf("outer.ParentID = %d, want -1", outer.ParentID)
	}
	if hole.ParentID != outer.ID {
		t.Errorf("hole.ParentID = %d, want %d", hole.ParentID, outer.ID)
	}
	if len(outer.ChildIDs) != 1 || outer.ChildIDs[0] != hole.ID {
		t.Errorf("outer.ChildIDs = %v, want [%d]", outer.ChildIDs, hole.ID)
	}
	if hole.CenterX < 95 || hole.CenterX > 105 {
		t.Errorf("hole.CenterX = %.1f, want near 100", hole.CenterX)
	}
}
