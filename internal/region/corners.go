package region

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"productvec/internal/config"
	"productvec/internal/contour"
)

// EstimateCorners measures the rounding of a rectangular region's four
// corners from its traced boundary and stores the result on the region.
//
// # Algorithm
//
// For each bounding-box corner, boundary points falling inside a square
// window (side min(w,h)/WindowDivisor) anchored at the corner are
// collected. A point at inward offset (dx, dy) from the corner that lies
// on a rounding arc of radius r satisfies (dx−r)² + (dy−r)² = r², which
// solves to r = dx + dy + √(2·dx·dy); points on the straight edges
// overestimate r, so the low quantile of the per-point estimates recovers
// the arc radius while shrugging off the straight-edge tail and stray
// pixels. Corners with too few window points get a default radius
// proportional to the region size, and every radius is clamped to
// [ClampMin, min(w,h)/ClampDivisor] so a noisy fit can never produce a
// degenerate or overlapping arc.
//
// When the four radii agree to within UniformStdFrac of their mean they
// collapse to a single uniform radius, letting the emitter use a plain
// rounded <rect>.
func EstimateCorners(r *Region, cfg config.Corners) {
	b := r.Bounds
	w, h := float64(b.Dx()), float64(b.Dy())
	minDim := math.Min(w, h)
	if minDim <= 0 || len(r.Outline) == 0 {
		return
	}

	window := minDim / float64(cfg.WindowDivisor)
	defRadius := cfg.DefaultRadiusFrac * minDim
	clampMax := minDim / cfg.ClampDivisor

	// Anchor corner plus the inward direction along each axis.
	type anchor struct {
		pt     contour.Point
		sx, sy int
	}
	anchors := [4]anchor{
		{contour.Point{X: b.Min.X, Y: b.Min.Y}, 1, 1},
		{contour.Point{X: b.Max.X - 1, Y: b.Min.Y}, -1, 1},
		{contour.Point{X: b.Max.X - 1, Y: b.Max.Y - 1}, -1, -1},
		{contour.Point{X: b.Min.X, Y: b.Max.Y - 1}, 1, -1},
	}

	var radii [4]float64
	for i, a := range anchors {
		var ests []float64
		for _, p := range r.Outline {
			dx := float64((p.X - a.pt.X) * a.sx)
			dy := float64((p.Y - a.pt.Y) * a.sy)
			if dx >= 0 && dx <= window && dy >= 0 && dy <= window {
				ests = append(ests, dx+dy+math.Sqrt(2*dx*dy))
			}
		}
		if len(ests) < cfg.MinPoints {
			radii[i] = clamp(defRadius, cfg.ClampMin, clampMax)
			continue
		}
		sort.Float64s(ests)
		q := stat.Quantile(cfg.Percentile, stat.Empirical, ests, nil)
		radii[i] = clamp(q, cfg.ClampMin, clampMax)
	}

	r.Corners = CornerRadii{
		TopLeft:     radii[0],
		TopRight:    radii[1],
		BottomRight: radii[2],
		BottomLeft:  radii[3],
	}

	mean, std := stat.MeanStdDev(radii[:], nil)
	if mean > 0 && std < cfg.UniformStdFrac*mean {
		r.Corners.Uniform = mean
		r.Corners.UseUniform = true
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}
