package contour

import (
	"image"
	"math"
	"sort"
)

// Point is a pixel coordinate on a traced boundary.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Area returns the enclosed area of a closed polygon via the shoelace
// (Green's theorem) formula. The sign depends on winding; callers usually
// want the absolute value.
func Area(pts []Point) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += float64(p.X)*float64(q.Y) - float64(q.X)*float64(p.Y)
	}
	return sum / 2
}

// Perimeter returns the closed-polygon perimeter as the sum of Euclidean
// edge lengths, including the closing edge.
func Perimeter(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	sum := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += math.Hypot(float64(q.X-p.X), float64(q.Y-p.Y))
	}
	return sum
}

// BoundingBox returns the axis-aligned bounding box of the points. The
// returned rectangle is inclusive of the extreme pixels, so a single point
// yields a 1x1 box.
func BoundingBox(pts []Point) image.Rectangle {
	if len(pts) == 0 {
		return image.Rectangle{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// CentroidY returns the y coordinate of the polygon centroid from the first
// moment. Degenerate boundaries (near-zero area) fall back to the bounding
// box center rather than dividing by zero.
func CentroidY(pts []Point) float64 {
	a := Area(pts)
	if math.Abs(a) < 1e-9 {
		box := BoundingBox(pts)
		return float64(box.Min.Y+box.Max.Y-1) / 2
	}
	sum := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		cross := float64(p.X)*float64(q.Y) - float64(q.X)*float64(p.Y)
		sum += (float64(p.Y) + float64(q.Y)) * cross
	}
	return sum / (6 * a)
}

// ConvexHull returns the convex hull of the points in counterclockwise
// order (Andrew's monotone chain).
func ConvexHull(pts []Point) []Point {
	if len(pts) < 3 {
		return append([]Point(nil), pts...)
	}

	sorted := append([]Point(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})
	// Drop duplicates so collinear duplicate points cannot break the chain.
	uniq := sorted[:1]
	for _, p := range sorted[1:] {
		if p != uniq[len(uniq)-1] {
			uniq = append(uniq, p)
		}
	}
	if len(uniq) < 3 {
		return append([]Point(nil), uniq...)
	}

	cross := func(o, a, b Point) int {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	var hull []Point
	for _, p := range uniq {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(uniq) - 2; i >= 0; i-- {
		p := uniq[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// Approximate reduces a closed boundary to a simpler polygon using the
// Ramer-Douglas-Peucker algorithm with the given distance tolerance. The
// boundary is split at the two mutually farthest anchor points so the
// closed curve can be treated as two open chains.
func Approximate(pts []Point, epsilon float64) []Point {
	if len(pts) < 3 || epsilon <= 0 {
		return append([]Point(nil), pts...)
	}

	// Anchor 0 is index 0; anchor 1 is the point farthest from it.
	far := 0
	best := -1.0
	for i, p := range pts {
		d := sqDist(pts[0], p)
		if d > best {
			best = d
			far = i
		}
	}
	if far == 0 {
		return append([]Point(nil), pts...)
	}

	back := make([]Point, 0, len(pts)-far+1)
	back = append(back, pts[far:]...)
	back = append(back, pts[0])

	first := rdp(pts[:far+1], epsilon)
	second := rdp(back, epsilon)

	out := append([]Point(nil), first...)
	// Both chains carry their endpoints; skip the shared anchors.
	if len(second) > 2 {
		out = append(out, second[1:len(second)-1]...)
	}
	return out
}

func rdp(pts []Point, epsilon float64) []Point {
	if len(pts) < 3 {
		return append([]Point(nil), pts...)
	}
	idx := 0
	maxDist := 0.0
	a, b := pts[0], pts[len(pts)-1]
	for i := 1; i < len(pts)-1; i++ {
		d := perpDist(pts[i], a, b)
		if d > maxDist {
			maxDist = d
			idx = i
		}
	}
	if maxDist <= epsilon {
		return []Point{a, b}
	}
	left := rdp(pts[:idx+1], epsilon)
	right := rdp(pts[idx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// Defect is a convexity defect: a span of the boundary that dips inward
// from the convex hull.
type Defect struct {
	Start Point   // hull vertex opening the span
	End   Point   // hull vertex closing the span
	Far   Point   // deepest boundary point in between
	Depth float64 // perpendicular distance from Far to the hull edge
}

// ConvexityDefects finds the inward deviations of a closed boundary from
// its convex hull. Only defects deeper than minDepth are reported; shallow
// digitization ripple is ignored.
func ConvexityDefects(pts []Point, minDepth float64) []Defect {
	if len(pts) < 4 {
		return nil
	}
	hull := ConvexHull(pts)
	if len(hull) < 3 {
		return nil
	}

	onHull := make(map[Point]bool, len(hull))
	for _, h := range hull {
		onHull[h] = true
	}

	// Hull vertices in boundary order partition the contour into spans.
	var anchors []int
	for i, p := range pts {
		if onHull[p] {
			anchors = append(anchors, i)
		}
	}
	if len(anchors) < 2 {
		return nil
	}

	var defects []Defect
	for k, start := range anchors {
		end := anchors[(k+1)%len(anchors)]
		a := pts[start]
		b := pts[end]

		depth := 0.0
		far := a
		for i := (start + 1) % len(pts); i != end; i = (i + 1) % len(pts) {
			d := perpDist(pts[i], a, b)
			if d > depth {
				depth = d
				far = pts[i]
			}
		}
		if depth >= minDepth {
			defects = append(defects, Defect{Start: a, End: b, Far: far, Depth: depth})
		}
	}
	return defects
}

func sqDist(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return dx*dx + dy*dy
}

func perpDist(p, a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(float64(p.X-a.X), float64(p.Y-a.Y))
	}
	return math.Abs(dx*float64(p.Y-a.Y)-dy*float64(p.X-a.X)) / length
}
