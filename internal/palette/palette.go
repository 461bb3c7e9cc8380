// Package palette samples representative colors from the source photo for
// each detected region, so the emitted vector shapes carry the product's
// real appearance instead of placeholder fills.
package palette

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"productvec/internal/contour"
	"productvec/internal/region"
)

// Sampler reads colors out of one source image.
type Sampler struct {
	img image.Image
}

// New returns a sampler over img.
func New(img image.Image) *Sampler {
	return &Sampler{img: img}
}

// Stop is one color stop of a vertical gradient, Offset in [0, 1].
type Stop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// RegionColor returns the mean color inside the region as "#rrggbb".
//
// The region's outline is scanline-filled (even-odd rule) so only pixels
// actually inside the boundary contribute; the bounding box alone would
// bleed background into non-rectangular shapes. Circle controls are
// sampled on an annulus near their rim instead, because their center is
// usually a differently colored inner button.
func (s *Sampler) RegionColor(r *region.Region) string {
	if r.Role == region.CircleControl && r.Radius > 0 {
		return s.RingColor(r.CenterX, r.CenterY, r.Radius)
	}
	if len(r.Outline) < 3 {
		return s.meanRect(r.Bounds)
	}

	var sum colorSum
	b := r.Bounds.Intersect(s.img.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for _, span := range scanSpans(r.Outline, y) {
			x0 := clampInt(span[0], b.Min.X, b.Max.X)
			x1 := clampInt(span[1], b.Min.X, b.Max.X)
			for x := x0; x < x1; x++ {
				sum.add(s.img.At(x, y))
			}
		}
	}
	if sum.n == 0 {
		return s.meanRect(r.Bounds)
	}
	return sum.hex()
}

// RingColor samples an annulus between 80% and 95% of radius around the
// center and returns the mean as "#rrggbb".
func (s *Sampler) RingColor(cx, cy, radius float64) string {
	var sum colorSum
	ib := s.img.Bounds()
	inner, outer := 0.8*radius, 0.95*radius
	for a := 0.0; a < 2*math.Pi; a += math.Pi / 36 {
		for _, rr := range []float64{inner, (inner + outer) / 2, outer} {
			x := int(cx + rr*math.Cos(a))
			y := int(cy + rr*math.Sin(a))
			if (image.Point{X: x, Y: y}).In(ib) {
				sum.add(s.img.At(x, y))
			}
		}
	}
	if sum.n == 0 {
		return "#000000"
	}
	return sum.hex()
}

// GradientStops splits the box into n horizontal bands and returns the mean
// color of each as a vertical gradient stop. Bands that fall outside the
// image are skipped; fewer than two usable stops yield nil.
func (s *Sampler) GradientStops(b image.Rectangle, n int) []Stop {
	b = b.Intersect(s.img.Bounds())
	if n < 2 || b.Dy() < n {
		return nil
	}
	stops := make([]Stop, 0, n)
	bandH := float64(b.Dy()) / float64(n)
	for i := 0; i < n; i++ {
		y0 := b.Min.Y + int(float64(i)*bandH)
		y1 := b.Min.Y + int(float64(i+1)*bandH)
		band := image.Rect(b.Min.X, y0, b.Max.X, y1)
		var sum colorSum
		for y := band.Min.Y; y < band.Max.Y; y++ {
			for x := band.Min.X; x < band.Max.X; x++ {
				sum.add(s.img.At(x, y))
			}
		}
		if sum.n == 0 {
			continue
		}
		stops = append(stops, Stop{
			Offset: (float64(i) + 0.5) / float64(n),
			Color:  sum.hex(),
		})
	}
	if len(stops) < 2 {
		return nil
	}
	return stops
}

// Dominant returns the most frequent quantized color on a sampling grid
// over the box: rows every yStepPct of the height, nx samples per row.
func (s *Sampler) Dominant(b image.Rectangle, yStepPct float64, nx int) string {
	b = b.Intersect(s.img.Bounds())
	if b.Empty() || nx < 1 || yStepPct <= 0 {
		return "#000000"
	}
	step := int(yStepPct * float64(b.Dy()))
	if step < 1 {
		step = 1
	}
	counts := map[[3]uint8]int{}
	sums := map[[3]uint8]colorSum{}
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for i := 0; i < nx; i++ {
			x := b.Min.X + (i+1)*b.Dx()/(nx+1)
			r, g, bb, _ := s.img.At(x, y).RGBA()
			// Quantize to 32 levels per channel so near-identical pixels
			// vote for the same bucket.
			key := [3]uint8{uint8(r >> 11), uint8(g >> 11), uint8(bb >> 11)}
			counts[key]++
			cs := sums[key]
			cs.add(s.img.At(x, y))
			sums[key] = cs
		}
	}
	var bestKey [3]uint8
	best := -1
	keys := make([][3]uint8, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		if a[1] != b[1] {
			return a[1] < b[1]
		}
		return a[2] < b[2]
	})
	for _, k := range keys {
		if counts[k] > best {
			best = counts[k]
			bestKey = k
		}
	}
	if best < 0 {
		return "#000000"
	}
	cs := sums[bestKey]
	return cs.hex()
}

func (s *Sampler) meanRect(b image.Rectangle) string {
	b = b.Intersect(s.img.Bounds())
	var sum colorSum
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum.add(s.img.At(x, y))
		}
	}
	if sum.n == 0 {
		return "#000000"
	}
	return sum.hex()
}

// scanSpans intersects the closed outline with scanline y and returns the
// interior [x0, x1) spans under the even-odd rule.
func scanSpans(pts []contour.Point, y int) [][2]int {
	fy := float64(y) + 0.5
	var xs []float64
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		y0, y1 := float64(a.Y), float64(b.Y)
		if y0 == y1 {
			continue
		}
		if (fy >= y0 && fy < y1) || (fy >= y1 && fy < y0) {
			t := (fy - y0) / (y1 - y0)
			xs = append(xs, float64(a.X)+t*float64(b.X-a.X))
		}
	}
	sort.Float64s(xs)
	spans := make([][2]int, 0, len(xs)/2)
	for i := 0; i+1 < len(xs); i += 2 {
		x0 := int(math.Ceil(xs[i]))
		x1 := int(math.Floor(xs[i+1])) + 1
		if x1 > x0 {
			spans = append(spans, [2]int{x0, x1})
		}
	}
	return spans
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type colorSum struct {
	r, g, b float64
	n       int
}

func (c *colorSum) add(col color.Color) {
	r, g, b, _ := col.RGBA()
	c.r += float64(r) / 65535
	c.g += float64(g) / 65535
	c.b += float64(b) / 65535
	c.n++
}

func (c *colorSum) hex() string {
	n := float64(c.n)
	return colorful.Color{R: c.r / n, G: c.g / n, B: c.b / n}.Hex()
}
