// Package contour extracts closed boundaries from a binary mask, computes
// their geometric descriptors, and preserves the containment topology
// (which boundary sits inside which) as plain integer references.
package contour

import (
	"image"
	"math"
)

// Contour is one traced closed boundary with its derived descriptors.
// Parent/Children are indices into the slice returned by Trace; they
// express containment, never ownership.
type Contour struct {
	Points []Point

	// Hole marks an inner boundary: the edge of an enclosed background
	// region (a button well inside the body, the gap inside a ring).
	Hole bool

	Parent   int
	Children []int

	Area        float64
	Perimeter   float64
	Bounds      image.Rectangle
	AspectRatio float64
	Extent      float64
	Circularity float64
	Convexity   float64
	CenterY     float64
}

// Trace extracts every closed boundary from the mask, outer boundaries of
// 8-connected foreground components and boundaries of the background holes
// they enclose. Boundaries enclosing less than minArea px² are dropped as
// noise. An empty mask yields an empty slice, never an error.
func Trace(mask *image.Gray, minArea float64) []Contour {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	fg := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fg[y*w+x] = mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y != 0
		}
	}

	compLabels, nComps := labelComponents(fg, w, h, true)
	holeLabels, nHoles := labelHoles(fg, w, h)

	// Region ids: foreground components first, then holes. A label that
	// fails the noise floor maps to -1 and is transparent to its children.
	compID := make([]int, nComps+1)
	holeID := make([]int, nHoles+1)
	for i := range compID {
		compID[i] = -1
	}
	for i := range holeID {
		holeID[i] = -1
	}

	var out []Contour

	type traced struct {
		pts   []Point
		hole  bool
		label int
	}
	var keep []traced

	for label := 1; label <= nComps; label++ {
		pts := moore(compLabels, w, h, label)
		if math.Abs(Area(pts)) < minArea {
			continue
		}
		compID[label] = len(keep)
		keep = append(keep, traced{pts: pts, label: label})
	}
	for label := 1; label <= nHoles; label++ {
		pts := moore(holeLabels, w, h, label)
		if math.Abs(Area(pts)) < minArea {
			continue
		}
		holeID[label] = len(keep)
		keep = append(keep, traced{pts: pts, hole: true, label: label})
	}

	out = make([]Contour, len(keep))
	for i, t := range keep {
		c := describe(t.pts)
		c.Hole = t.hole
		c.Parent = -1
		out[i] = c
	}

	// Containment comes straight from the label maps: the pixel just left
	// of a boundary's start tells which region surrounds it.
	for i, t := range keep {
		sx, sy := t.pts[0].X, t.pts[0].Y
		var parent int
		if t.hole {
			parent = surroundingComp(compLabels, w, h, sx, sy, compID)
		} else {
			parent = surroundingHole(holeLabels, w, h, sx, sy, holeID)
		}
		if parent >= 0 && parent != i {
			out[i].Parent = parent
			out[parent].Children = append(out[parent].Children, i)
		}
	}

	return out
}

func describe(pts []Point) Contour {
	area := math.Abs(Area(pts))
	perim := Perimeter(pts)
	box := BoundingBox(pts)
	bw, bh := float64(box.Dx()), float64(box.Dy())

	c := Contour{
		Points:    pts,
		Area:      area,
		Perimeter: perim,
		Bounds:    box,
		CenterY:   CentroidY(pts),
	}
	if bh > 0 {
		c.AspectRatio = bw / bh
	}
	if bw*bh > 0 {
		c.Extent = area / (bw * bh)
	}
	if perim > 0 {
		c.Circularity = 4 * math.Pi * area / (perim * perim)
	}
	if hullArea := math.Abs(Area(ConvexHull(pts))); hullArea > 0 {
		c.Convexity = area / hullArea
	}
	return c
}

// labelComponents labels connected true-pixels starting at 1. Foreground
// uses 8-connectivity, background 4-connectivity, the standard pairing
// that keeps topology consistent on digital images.
func labelComponents(fg []bool, w, h int, eightConn bool) ([]int32, int) {
	labels := make([]int32, w*h)
	next := int32(0)
	var stack []int

	neighbors4 := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	neighbors8 := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	neighbors := neighbors4
	if eightConn {
		neighbors = neighbors8
	}

	for start := 0; start < w*h; start++ {
		if !fg[start] || labels[start] != 0 {
			continue
		}
		next++
		labels[start] = next
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			for _, d := range neighbors {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if fg[j] && labels[j] == 0 {
					labels[j] = next
					stack = append(stack, j)
				}
			}
		}
	}
	return labels, int(next)
}

// labelHoles labels enclosed background regions. Background connected to
// the image border is the outside, not a hole, and stays unlabeled.
func labelHoles(fg []bool, w, h int) ([]int32, int) {
	bg := make([]bool, w*h)
	for i, v := range fg {
		bg[i] = !v
	}
	labels, n := labelComponents(bg, w, h, false)

	// Collect labels that touch the border and erase them.
	outside := make([]bool, n+1)
	for x := 0; x < w; x++ {
		if l := labels[x]; l > 0 {
			outside[l] = true
		}
		if l := labels[(h-1)*w+x]; l > 0 {
			outside[l] = true
		}
	}
	for y := 0; y < h; y++ {
		if l := labels[y*w]; l > 0 {
			outside[l] = true
		}
		if l := labels[y*w+w-1]; l > 0 {
			outside[l] = true
		}
	}

	// Compact the remaining hole labels to 1..m.
	remap := make([]int32, n+1)
	m := int32(0)
	for l := int32(1); l <= int32(n); l++ {
		if !outside[l] {
			m++
			remap[l] = m
		}
	}
	for i, l := range labels {
		if l > 0 {
			labels[i] = remap[l]
		}
	}
	return labels, int(m)
}

// moore traces the outer boundary of a labeled component with
// Moore-neighbor tracing, returning boundary pixel coordinates in order.
// Collinear run midpoints are elided.
func moore(labels []int32, w, h, label int) []Point {
	target := int32(label)
	is := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return labels[y*w+x] == target
	}

	// Scan-order first pixel; its left neighbor is guaranteed outside.
	sx, sy := -1, -1
	for i, l := range labels {
		if l == target {
			sx, sy = i%w, i/w
			break
		}
	}
	if sx < 0 {
		return nil
	}

	// 8-neighborhood in clockwise order starting east.
	ndx := [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	ndy := [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	dirOf := func(dx, dy int) int {
		for i := 0; i < 8; i++ {
			if ndx[i] == dx && ndy[i] == dy {
				return i
			}
		}
		return 0
	}

	pts := make([]Point, 0, 64)
	push := func(x, y int) {
		n := len(pts)
		if n > 0 && pts[n-1].X == x && pts[n-1].Y == y {
			return
		}
		if n >= 2 {
			a, b := pts[n-2], pts[n-1]
			if (b.X-a.X)*(y-b.Y) == (b.Y-a.Y)*(x-b.X) {
				// Same direction: replace the run midpoint.
				d1x, d1y := sign(b.X-a.X), sign(b.Y-a.Y)
				d2x, d2y := sign(x-b.X), sign(y-b.Y)
				if d1x == d2x && d1y == d2y {
					pts = pts[:n-1]
				}
			}
		}
		pts = append(pts, Point{X: x, Y: y})
	}

	cx, cy := sx, sy
	bx, by := sx-1, sy
	push(cx, cy)

	// Jacob's stopping criterion: the boundary is complete when the walk
	// is about to leave the start pixel in the same direction as the very
	// first move. Pinch points that route the trace through the start more
	// than once leave in a different direction and keep going.
	firstDir := -1
	maxSteps := 4*w*h + 8

	for step := 0; step < maxSteps; step++ {
		start := (dirOf(bx-cx, by-cy) + 1) % 8
		moveDir := -1
		var tx, ty int
		for k := 0; k < 8; k++ {
			i := (start + k) % 8
			nx2, ny2 := cx+ndx[i], cy+ndy[i]
			if is(nx2, ny2) {
				moveDir = i
				tx, ty = nx2, ny2
				break
			}
		}
		if moveDir < 0 {
			break // isolated pixel
		}
		if cx == sx && cy == sy && moveDir == firstDir {
			break
		}
		if firstDir < 0 {
			firstDir = moveDir
		}
		// Backtrack becomes the pixel we entered from.
		bx, by = cx, cy
		cx, cy = tx, ty
		push(cx, cy)
	}

	// Drop a duplicated closing point.
	if len(pts) >= 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}

func surroundingComp(compLabels []int32, w, h, sx, sy int, compID []int) int {
	for x := sx - 1; x >= 0; x-- {
		if l := compLabels[sy*w+x]; l > 0 {
			return compID[l]
		}
	}
	return -1
}

func surroundingHole(holeLabels []int32, w, h, sx, sy int, holeID []int) int {
	if sx-1 >= 0 {
		if l := holeLabels[sy*w+sx-1]; l > 0 {
			return holeID[l]
		}
	}
	return -1
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
