package region

import (
	"math"

	"productvec/internal/config"
	"productvec/internal/contour"
)

// InferShape reduces a region's outline to a geometric primitive.
//
// The rules are an ordered decision list; the first match wins, so the
// order encodes priority, not probability:
//
//  1. Circle: high circularity alone is decisive.
//  2. Line: a long thin well-filled region, regardless of its polygon
//     approximation (thin shapes approximate unreliably).
//  3. Triangle: the simplified polygon has exactly 3 vertices.
//  4. Rectangle: 4 vertices and the simplified polygon fills most of its
//     bounding box. Slanted quadrilaterals fail the fill check and fall
//     through.
//  5. Rounded square: mid circularity, near-square, well filled. Common
//     for buttons whose corner rounding eats the polygon vertices.
//  6. Cross: enough deep convexity defects on a near-square, moderately
//     concave outline. A plus shape has exactly 4 inner corners.
//  7. Complex: everything else keeps its simplified polygon.
//
// The Body region is exempt: its shape is fixed at classification time and
// only its corner radii are estimated.
func InferShape(r *Region, cfg config.Shape) {
	if r.Role == Body {
		return
	}
	if len(r.Outline) == 0 {
		r.Shape = Complex
		return
	}

	if r.Circularity > cfg.CircleCircularity {
		r.Shape = Circle
		r.Radius = math.Sqrt(r.Area / math.Pi)
		return
	}

	if (r.AspectRatio >= cfg.LineAspect || r.AspectRatio <= 1/cfg.LineAspect) &&
		r.Extent >= cfg.LineExtent {
		r.Shape = Line
		return
	}

	eps := cfg.ApproxEpsilonFactor * r.Perimeter
	approx := contour.Approximate(r.Outline, eps)

	switch {
	case len(approx) == 3:
		r.Shape = Triangle
		r.Outline = approx
		return
	case len(approx) == 4 && rectFill(approx) > cfg.RectFillMin:
		r.Shape = Rectangle
		return
	}

	if r.Circularity >= cfg.RoundedRectCircMin && r.Circularity <= cfg.RoundedRectCircMax &&
		r.Extent >= cfg.RoundedRectExtentMin &&
		r.AspectRatio >= cfg.RoundedRectAspectMin && r.AspectRatio <= cfg.RoundedRectAspectMax {
		r.Shape = Rectangle
		return
	}

	if r.AspectRatio >= cfg.CrossAspectMin && r.AspectRatio <= cfg.CrossAspectMax &&
		r.Convexity > cfg.CrossConvexityMin && r.Convexity < cfg.CrossConvexityMax {
		// Approximation would swallow the arms; the raw outline stays.
		defects := contour.ConvexityDefects(r.Outline, cfg.CrossDefectDepth)
		if len(defects) >= cfg.CrossDefectsMin {
			r.Shape = Cross
			return
		}
	}

	r.Shape = Complex
	r.Outline = approx
}

// rectFill is the simplified polygon's area over its own bounding box. A
// slanted quadrilateral covers about half its box and fails the rectangle
// check even when the raw outline hugs the box.
func rectFill(pts []contour.Point) float64 {
	box := contour.BoundingBox(pts)
	denom := float64(box.Dx() * box.Dy())
	if denom == 0 {
		return 0
	}
	return math.Abs(contour.Area(pts)) / denom
}
