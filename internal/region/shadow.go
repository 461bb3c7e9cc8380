package region

import (
	"image"
	"math"
	"math/rand"

	"productvec/internal/config"
)

// shadowSeed fixes the interior-baseline sampling so the same image always
// yields the same shadow profile.
const shadowSeed = 7

// EstimateShadow measures brightness falloff around a region's bounding box
// against the grayscale source image and stores the profile on the region.
//
// Equally spaced points along each bounding-box edge are sampled a few
// pixels inside and outside the box, and compared against a baseline taken
// from seeded-random interior points. Darkening just inside the top and
// bottom edges relative to the baseline reads as an inner shadow (an inset
// surface); darkness just outside any edge reads as a drop shadow. The
// rendering blur radius grows with the stronger of the two.
func EstimateShadow(r *Region, gray *image.Gray, cfg config.Shadow) {
	b := r.Bounds
	ib := gray.Bounds()
	if b.Dx() < 4*cfg.SampleDistance || b.Dy() < 4*cfg.SampleDistance {
		return
	}

	rng := rand.New(rand.NewSource(shadowSeed))
	inner := b.Inset(b.Dx() / 4)
	if b.Dy()/4 < b.Dx()/4 {
		inner = b.Inset(b.Dy() / 4)
	}
	var baseline float64
	n := 0
	for i := 0; i < cfg.CenterSamples; i++ {
		x := inner.Min.X + rng.Intn(maxInt(inner.Dx(), 1))
		y := inner.Min.Y + rng.Intn(maxInt(inner.Dy(), 1))
		if p := (image.Point{X: x, Y: y}); p.In(ib) {
			baseline += float64(gray.GrayAt(x, y).Y)
			n++
		}
	}
	if n == 0 {
		return
	}
	baseline /= float64(n)

	d := cfg.SampleDistance
	topIn := edgeMean(gray, horizontal(b, b.Min.Y+d, cfg.EdgeSamples))
	bottomIn := edgeMean(gray, horizontal(b, b.Max.Y-1-d, cfg.EdgeSamples))

	topOut := edgeMean(gray, horizontal(b, b.Min.Y-d, cfg.EdgeSamples))
	bottomOut := edgeMean(gray, horizontal(b, b.Max.Y-1+d, cfg.EdgeSamples))
	leftOut := edgeMean(gray, vertical(b, b.Min.X-d, cfg.EdgeSamples))
	rightOut := edgeMean(gray, vertical(b, b.Max.X-1+d, cfg.EdgeSamples))

	var prof ShadowProfile

	if topIn >= 0 && bottomIn >= 0 {
		topDark := baseline - topIn
		bottomDark := baseline - bottomIn
		if topDark >= cfg.InnerDelta && bottomDark >= cfg.InnerDelta {
			prof.HasInner = true
			prof.InnerStrength = math.Min(1, (topDark+bottomDark)/2/cfg.InnerScale)
		}
	}

	// Each edge dark enough to count contributes its own strength; the
	// profile carries the average over the flagged edges, so one deep
	// shadow does not drown out three faint ones.
	outerSum := 0.0
	outerN := 0
	for _, m := range []float64{topOut, bottomOut, leftOut, rightOut} {
		if m < 0 {
			continue // edge band falls outside the image
		}
		if dark := 255 - m; dark > cfg.OuterDelta {
			outerSum += math.Min(1, dark/cfg.OuterScale)
			outerN++
		}
	}
	if outerN > 0 {
		prof.HasOuter = true
		prof.OuterStrength = outerSum / float64(outerN)
	}

	if prof.HasInner || prof.HasOuter {
		prof.BlurRadius = math.Round(2 + 3*math.Max(prof.InnerStrength, prof.OuterStrength))
	}
	r.Shadow = prof
}

// horizontal spreads n sample points across the box width at row y.
func horizontal(b image.Rectangle, y, n int) []image.Point {
	pts := make([]image.Point, 0, n)
	for i := 0; i < n; i++ {
		x := b.Min.X + (i+1)*b.Dx()/(n+1)
		pts = append(pts, image.Point{X: x, Y: y})
	}
	return pts
}

// vertical spreads n sample points across the box height at column x.
func vertical(b image.Rectangle, x, n int) []image.Point {
	pts := make([]image.Point, 0, n)
	for i := 0; i < n; i++ {
		y := b.Min.Y + (i+1)*b.Dy()/(n+1)
		pts = append(pts, image.Point{X: x, Y: y})
	}
	return pts
}

// edgeMean averages brightness at the points that land inside the image;
// it returns -1 when none do.
func edgeMean(gray *image.Gray, pts []image.Point) float64 {
	sum, n := 0.0, 0
	for _, p := range pts {
		if p.In(gray.Bounds()) {
			sum += float64(gray.GrayAt(p.X, p.Y).Y)
			n++
		}
	}
	if n == 0 {
		return -1
	}
	return sum / float64(n)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
