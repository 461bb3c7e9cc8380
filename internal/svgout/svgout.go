// Package svgout renders classified regions as a parametric SVG document.
// Every region becomes the simplest primitive its inferred shape allows, so
// the output stays editable: a designer can change a corner radius or a
// fill without touching path data.
package svgout

import (
	"fmt"
	"strings"

	"productvec/internal/palette"
	"productvec/internal/region"
)

// Options tunes document-level output.
type Options struct {
	// BodyGradient, when non-empty, fills the body with a vertical
	// gradient instead of its flat mean color.
	BodyGradient []palette.Stop

	// Background is painted under everything when non-empty ("#rrggbb").
	Background string
}

const defaultFill = "#cccccc"

// Generate renders the regions into a standalone SVG document of the given
// pixel size. Regions are drawn body first, then controls and buttons top
// to bottom, so later elements overlay earlier ones the way the physical
// product stacks. Discarded regions are skipped.
func Generate(width, height int, regions []region.Region, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)

	order := region.RenderOrder(regions)
	writeDefs(&b, regions, order, opts)

	if opts.Background != "" {
		fmt.Fprintf(&b, `  <rect width="%d" height="%d" fill="%s"/>`+"\n",
			width, height, opts.Background)
	}

	for _, i := range order {
		writeRegion(&b, &regions[i], opts)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// writeDefs emits shadow filters and the optional body gradient. Filter ids
// are keyed by region ID so references stay stable across runs.
func writeDefs(b *strings.Builder, regions []region.Region, order []int, opts Options) {
	var defs strings.Builder
	for _, i := range order {
		r := &regions[i]
		if r.Shadow.HasOuter {
			fmt.Fprintf(&defs, `    <filter id="drop%d" x="-20%%" y="-20%%" width="140%%" height="140%%">`+"\n", r.ID)
			fmt.Fprintf(&defs, `      <feGaussianBlur in="SourceAlpha" stdDeviation="%.1f"/>`+"\n", r.Shadow.BlurRadius)
			fmt.Fprintf(&defs, `      <feOffset dx="0" dy="%.1f" result="off"/>`+"\n", r.Shadow.BlurRadius/2)
			fmt.Fprintf(&defs, `      <feComponentTransfer in="off" result="dim"><feFuncA type="linear" slope="%.2f"/></feComponentTransfer>`+"\n", r.Shadow.OuterStrength)
			defs.WriteString(`      <feMerge><feMergeNode in="dim"/><feMergeNode in="SourceGraphic"/></feMerge>` + "\n")
			defs.WriteString("    </filter>\n")
		}
		if r.Shadow.HasInner {
			fmt.Fprintf(&defs, `    <filter id="inner%d">`+"\n", r.ID)
			defs.WriteString(`      <feComponentTransfer in="SourceAlpha"><feFuncA type="table" tableValues="1 0"/></feComponentTransfer>` + "\n")
			fmt.Fprintf(&defs, `      <feGaussianBlur stdDeviation="%.1f"/>`+"\n", r.Shadow.BlurRadius)
			fmt.Fprintf(&defs, `      <feComposite operator="in" in2="SourceAlpha" result="shade"/>`+"\n")
			fmt.Fprintf(&defs, `      <feComponentTransfer in="shade" result="dim"><feFuncA type="linear" slope="%.2f"/></feComponentTransfer>`+"\n", r.Shadow.InnerStrength)
			defs.WriteString(`      <feMerge><feMergeNode in="SourceGraphic"/><feMergeNode in="dim"/></feMerge>` + "\n")
			defs.WriteString("    </filter>\n")
		}
	}
	if len(opts.BodyGradient) > 0 {
		defs.WriteString(`    <linearGradient id="bodyfill" x1="0" y1="0" x2="0" y2="1">` + "\n")
		for _, s := range opts.BodyGradient {
			fmt.Fprintf(&defs, `      <stop offset="%.3f" stop-color="%s"/>`+"\n", s.Offset, s.Color)
		}
		defs.WriteString("    </linearGradient>\n")
	}
	if defs.Len() > 0 {
		b.WriteString("  <defs>\n")
		b.WriteString(defs.String())
		b.WriteString("  </defs>\n")
	}
}

func writeRegion(b *strings.Builder, r *region.Region, opts Options) {
	fill := r.Color
	if fill == "" {
		fill = defaultFill
	}
	if r.Role == region.Body && len(opts.BodyGradient) > 0 {
		fill = "url(#bodyfill)"
	}

	attrs := fmt.Sprintf(` fill="%s"`, fill)
	if r.Shadow.HasOuter {
		attrs += fmt.Sprintf(` filter="url(#drop%d)"`, r.ID)
	} else if r.Shadow.HasInner {
		attrs += fmt.Sprintf(` filter="url(#inner%d)"`, r.ID)
	}

	switch r.Shape {
	case region.Circle:
		fmt.Fprintf(b, `  <circle cx="%.1f" cy="%.1f" r="%.1f"%s/>`+"\n",
			r.CenterX, r.CenterY, r.Radius, attrs)
	case region.Rectangle:
		writeRect(b, r, attrs)
	case region.Triangle:
		pts := make([]string, 0, len(r.Outline))
		for _, p := range r.Outline {
			pts = append(pts, fmt.Sprintf("%d,%d", p.X, p.Y))
		}
		fmt.Fprintf(b, `  <polygon points="%s"%s/>`+"\n", strings.Join(pts, " "), attrs)
	case region.Line:
		bb := r.Bounds
		fmt.Fprintf(b, `  <rect x="%d" y="%d" width="%d" height="%d"%s/>`+"\n",
			bb.Min.X, bb.Min.Y, bb.Dx(), bb.Dy(), attrs)
	default: // Cross and Complex render their outline as a closed path
		if len(r.Outline) < 3 {
			return
		}
		fmt.Fprintf(b, `  <path d="%s"%s/>`+"\n", pathData(r), attrs)
	}
}

// writeRect emits a plain rounded <rect> when the corner radii collapsed to
// one value, otherwise a path with an explicit arc per corner.
func writeRect(b *strings.Builder, r *region.Region, attrs string) {
	bb := r.Bounds
	if r.Corners.UseUniform || !cornersDiffer(r.Corners) {
		rad := r.Corners.Uniform
		if !r.Corners.UseUniform {
			rad = r.Corners.TopLeft
		}
		if rad > 0.5 {
			fmt.Fprintf(b, `  <rect x="%d" y="%d" width="%d" height="%d" rx="%.1f" ry="%.1f"%s/>`+"\n",
				bb.Min.X, bb.Min.Y, bb.Dx(), bb.Dy(), rad, rad, attrs)
		} else {
			fmt.Fprintf(b, `  <rect x="%d" y="%d" width="%d" height="%d"%s/>`+"\n",
				bb.Min.X, bb.Min.Y, bb.Dx(), bb.Dy(), attrs)
		}
		return
	}

	x0, y0 := float64(bb.Min.X), float64(bb.Min.Y)
	x1, y1 := float64(bb.Max.X), float64(bb.Max.Y)
	tl, tr := r.Corners.TopLeft, r.Corners.TopRight
	br, bl := r.Corners.BottomRight, r.Corners.BottomLeft

	var d strings.Builder
	fmt.Fprintf(&d, "M %.1f %.1f", x0+tl, y0)
	fmt.Fprintf(&d, " L %.1f %.1f", x1-tr, y0)
	fmt.Fprintf(&d, " A %.1f %.1f 0 0 1 %.1f %.1f", tr, tr, x1, y0+tr)
	fmt.Fprintf(&d, " L %.1f %.1f", x1, y1-br)
	fmt.Fprintf(&d, " A %.1f %.1f 0 0 1 %.1f %.1f", br, br, x1-br, y1)
	fmt.Fprintf(&d, " L %.1f %.1f", x0+bl, y1)
	fmt.Fprintf(&d, " A %.1f %.1f 0 0 1 %.1f %.1f", bl, bl, x0, y1-bl)
	fmt.Fprintf(&d, " L %.1f %.1f", x0, y0+tl)
	fmt.Fprintf(&d, " A %.1f %.1f 0 0 1 %.1f %.1f Z", tl, tl, x0+tl, y0)
	fmt.Fprintf(b, `  <path d="%s"%s/>`+"\n", d.String(), attrs)
}

func cornersDiffer(c region.CornerRadii) bool {
	return c.TopLeft != c.TopRight || c.TopRight != c.BottomRight ||
		c.BottomRight != c.BottomLeft
}

func pathData(r *region.Region) string {
	var d strings.Builder
	for i, p := range r.Outline {
		if i == 0 {
			fmt.Fprintf(&d, "M %d %d", p.X, p.Y)
		} else {
			fmt.Fprintf(&d, " L %d %d", p.X, p.Y)
		}
	}
	d.WriteString(" Z")
	return d.String()
}
