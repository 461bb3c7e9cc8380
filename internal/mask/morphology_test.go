package mask

import (
	"image"
	"image/color"
	"testing"
)

func blank(w, h int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, w, h))
}

func setRect(m *image.Gray, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.SetGray(x, y, color.Gray{Y: 255})
		}
	}
}

func onCount(m *image.Gray) int {
	n := 0
	for _, v := range m.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestDilate_Grows(t *testing.T) {
	m := blank(21, 21)
	m.SetGray(10, 10, color.Gray{Y: 255})

	out := Dilate(m, 5)
	if out.GrayAt(10, 10).Y != 255 {
		t.Error("seed pixel lost")
	}
	if got := onCount(out); got <= 1 {
		t.Errorf("on pixels = %d, want growth", got)
	}
	if out.GrayAt(0, 0).Y != 0 {
		t.Error("dilation reached the far corner")
	}
}

func TestErode_Shrinks(t *testing.T) {
	m := blank(21, 21)
	setRect(m, 7, 7, 14, 14)
	before := onCount(m)

	out := Erode(m, 3)
	if out.GrayAt(10, 10).Y != 255 {
		t.Error("block center lost")
	}
	if out.GrayAt(7, 7).Y != 0 {
		t.Error("block corner survived erosion")
	}
	if got := onCount(out); got >= before {
		t.Errorf("on pixels = %d, want fewer than %d", got, before)
	}
}

func TestClose_FillsHole(t *testing.T) {
	m := blank(40, 40)
	setRect(m, 10, 10, 30, 30)
	m.SetGray(20, 20, color.Gray{Y: 0})

	out := Close(m, 5)
	if out.GrayAt(20, 20).Y != 255 {
		t.Error("hole not filled")
	}
	if out.GrayAt(2, 2).Y != 0 {
		t.Error("close leaked into the background")
	}
}

func TestOpen_RemovesSpeckle(t *testing.T) {
	m := blank(40, 40)
	setRect(m, 10, 10, 30, 30)
	m.SetGray(36, 5, color.Gray{Y: 255})

	out := Open(m, 3)
	if out.GrayAt(36, 5).Y != 0 {
		t.Error("isolated pixel survived opening")
	}
	if out.GrayAt(20, 20).Y != 255 {
		t.Error("block center lost")
	}
}

func TestUnion(t *testing.T) {
	a := blank(10, 10)
	b := blank(10, 10)
	a.SetGray(2, 2, color.Gray{Y: 255})
	b.SetGray(7, 7, color.Gray{Y: 255})

	out := Union(a, b)
	if out.GrayAt(2, 2).Y != 255 || out.GrayAt(7, 7).Y != 255 {
		t.Error("union dropped a pixel")
	}
	if got := onCount(out); got != 2 {
		t.Errorf("on pixels = %d, want 2", got)
	}
}

func TestKernelRadius(t *testing.T) {
	cases := []struct {
		kernel int
		want   float64
	}{
		{11, 5},
		{5, 2},
		{3, 1},
		{1, 0},
	}
	for _, tc := range cases {
		if got := kernelRadius(tc.kernel); got != tc.want {
			t.Errorf("kernelRadius(%d) = %v, want %v", tc.kernel, got, tc.want)
		}
	}
}
