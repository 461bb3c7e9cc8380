package region

import (
	"math"
	"sort"

	"productvec/internal/config"
)

// Classify assigns a role to every region in place.
//
// Roles are decided in two passes so that relative rules (which disc is
// largest, how far a dot sits from the control) see the whole field before
// committing:
//
//  1. The largest region becomes the Body. Every other region is gated as a
//     circular candidate (near-square aspect, round enough, convex enough);
//     small circular candidates are held back as dots, the rest of the
//     circular candidates compete for CircleControl by area, and everything
//     else becomes a Button.
//  2. With the control fixed, each held-back dot is kept as a SmallDot only
//     if it clusters around the control and sits clear of the body's left
//     and right edges; stragglers are Discarded.
//
// Region IDs and parent links are never touched; use RenderOrder for the
// stable output ordering. An empty slice is returned unchanged.
func Classify(regions []Region, cfg config.Classify) {
	if len(regions) == 0 {
		return
	}

	body := -1
	for i := range regions {
		if body < 0 || regions[i].Area > regions[body].Area {
			body = i
		}
	}
	if cfg.BodyConvexityMin > 0 && regions[body].Convexity < cfg.BodyConvexityMin {
		body = -1
	}
	if body >= 0 {
		regions[body].Role = Body
		regions[body].Shape = Rectangle
	}

	var dots, discs []int
	for i := range regions {
		if i == body {
			continue
		}
		r := &regions[i]
		circular := r.AspectRatio >= cfg.CircleAspectMin &&
			r.AspectRatio <= cfg.CircleAspectMax &&
			r.Circularity > cfg.CircleCircularity &&
			r.Convexity > cfg.CircleConvexityMin
		switch {
		case circular && r.Area < cfg.DotAreaMax:
			dots = append(dots, i)
		case circular:
			discs = append(discs, i)
		default:
			r.Role = Button
		}
	}

	control := -1
	for _, i := range discs {
		if control < 0 || regions[i].Area > regions[control].Area {
			control = i
		}
	}
	for _, i := range discs {
		r := &regions[i]
		r.Radius = math.Sqrt(r.Area / math.Pi)
		if i == control {
			r.Role = CircleControl
			r.Shape = Circle
		} else {
			r.Role = Button
		}
	}

	// The dot cluster test measures against the control's bounding box:
	// half its longer side as the radius, its center as the anchor. The
	// equivalent-area radius stored above is for rendering only and reads
	// too small on an elongated control.
	var ccRadius, ccX, ccY float64
	if control >= 0 {
		bb := regions[control].Bounds
		ccRadius = float64(max(bb.Dx(), bb.Dy())) / 2
		ccX = float64(bb.Min.X+bb.Max.X) / 2
		ccY = float64(bb.Min.Y+bb.Max.Y) / 2
	}
	for _, i := range dots {
		r := &regions[i]
		r.Radius = math.Sqrt(r.Area / math.Pi)
		r.Shape = Circle
		if control < 0 {
			r.Role = Discarded
			continue
		}
		d := math.Hypot(r.CenterX-ccX, r.CenterY-ccY)
		if d >= cfg.DotDistanceFactor*ccRadius {
			r.Role = Discarded
			continue
		}
		// Scan-line artifacts hug the body's vertical edges; only the
		// horizontal margin is checked. See DESIGN.md.
		if body >= 0 {
			bb := regions[body].Bounds
			if r.CenterX < float64(bb.Min.X)+cfg.DotEdgeMargin ||
				r.CenterX > float64(bb.Max.X)-cfg.DotEdgeMargin {
				r.Role = Discarded
				continue
			}
		}
		r.Role = SmallDot
	}
}

// RenderOrder returns region indices in the order the emitter should draw
// them: body first (so everything else paints on top), then the circle
// control, then buttons top to bottom (left to right on ties), then small
// dots in the same spatial order. Discarded and unclassified regions are
// left out.
func RenderOrder(regions []Region) []int {
	var body, control, buttons, dots []int
	for i := range regions {
		switch regions[i].Role {
		case Body:
			body = append(body, i)
		case CircleControl:
			control = append(control, i)
		case Button:
			buttons = append(buttons, i)
		case SmallDot:
			dots = append(dots, i)
		}
	}
	spatial := func(idx []int) {
		sort.SliceStable(idx, func(a, b int) bool {
			ra, rb := &regions[idx[a]], &regions[idx[b]]
			if ra.CenterY != rb.CenterY {
				return ra.CenterY < rb.CenterY
			}
			return ra.CenterX < rb.CenterX
		})
	}
	spatial(buttons)
	spatial(dots)

	out := make([]int, 0, len(body)+len(control)+len(buttons)+len(dots))
	out = append(out, body...)
	out = append(out, control...)
	out = append(out, buttons...)
	out = append(out, dots...)
	return out
}
