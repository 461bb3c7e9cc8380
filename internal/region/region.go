// Package region turns traced contours into classified product regions:
// the device body, its circular control, buttons, and indicator dots. Each
// region carries a functional role, an inferred shape, and the rendering
// attributes (corner radii, shadow profile, fill color) a vector emitter
// needs to reproduce it.
package region

import (
	"image"

	"productvec/internal/contour"
)

// Role identifies the functional part a region plays on the product face.
type Role int

const (
	// Unclassified regions stayed in the output without a role; they are
	// candidates that passed the noise floor but matched no rule.
	Unclassified Role = iota

	// Body is the main device outline, the largest traced contour.
	Body

	// CircleControl is the dominant disc on the face (a navigation ring,
	// a dial, a large round button).
	CircleControl

	// Button is any other control surface inside the body.
	Button

	// SmallDot is a small disc clustered around the circle control,
	// typically a directional indicator.
	SmallDot

	// Discarded regions were filtered out (edge artifacts, stray dots far
	// from the control). They are kept for diagnostics but never rendered.
	Discarded
)

// String returns the role name used in JSON output and logs.
func (r Role) String() string {
	switch r {
	case Body:
		return "body"
	case CircleControl:
		return "circle_control"
	case Button:
		return "button"
	case SmallDot:
		return "small_dot"
	case Discarded:
		return "discarded"
	default:
		return "unclassified"
	}
}

// MarshalText implements encoding.TextMarshaler so roles serialize as their
// names rather than as integers.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ShapeClass is the geometric primitive a region's outline reduces to.
type ShapeClass int

const (
	// Complex is the fallback for outlines no primitive explains; the
	// emitter renders the approximated polygon as a path.
	Complex ShapeClass = iota

	// Circle outlines render as <circle> elements.
	Circle

	// Cross outlines render as a plus-shaped path (a D-pad).
	Cross

	// Rectangle outlines render as <rect>, possibly with rounded corners.
	Rectangle

	// Triangle outlines render as a 3-vertex polygon.
	Triangle

	// Line outlines are long thin regions rendered as a thin rect.
	Line
)

// String returns the shape name used in JSON output and SVG comments.
func (s ShapeClass) String() string {
	switch s {
	case Circle:
		return "circle"
	case Cross:
		return "cross"
	case Rectangle:
		return "rectangle"
	case Triangle:
		return "triangle"
	case Line:
		return "line"
	default:
		return "complex"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ShapeClass) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CornerRadii holds the per-corner rounding of a rectangular region.
//
// When UseUniform is set the four radii agreed closely and Uniform carries
// their collapsed value; the emitter then uses rx/ry on a <rect> instead of
// a per-corner arc path.
type CornerRadii struct {
	TopLeft     float64 `json:"top_left"`
	TopRight    float64 `json:"top_right"`
	BottomRight float64 `json:"bottom_right"`
	BottomLeft  float64 `json:"bottom_left"`

	Uniform    float64 `json:"uniform,omitempty"`
	UseUniform bool    `json:"use_uniform"`
}

// ShadowProfile describes the brightness falloff measured around a region's
// boundary, used to reconstruct inner and drop shadows.
type ShadowProfile struct {
	// HasInner means the top and bottom interior edges are darker than the
	// region center, suggesting an inset surface.
	HasInner bool `json:"has_inner"`

	// HasOuter means at least one exterior edge is dark, suggesting the
	// region casts a drop shadow on its surroundings.
	HasOuter bool `json:"has_outer"`

	// InnerStrength and OuterStrength are normalized to [0, 1].
	InnerStrength float64 `json:"inner_strength"`
	OuterStrength float64 `json:"outer_strength"`

	// BlurRadius is the Gaussian blur, in pixels, the shadow filter should
	// use when rendering.
	BlurRadius float64 `json:"blur_radius"`
}

// Region is one classified area of the product face.
type Region struct {
	// ID is the region's index in the pipeline output. ParentID is the ID
	// of the enclosing region, or -1 at the top level.
	ID       int   `json:"id"`
	ParentID int   `json:"parent_id"`
	ChildIDs []int `json:"child_ids,omitempty"`

	Role  Role       `json:"role"`
	Shape ShapeClass `json:"shape"`

	// Outline is the traced boundary, simplified for rendering when the
	// shape is Complex or Cross.
	Outline []contour.Point `json:"outline,omitempty"`

	// Hole marks a region traced from an inner boundary (an opening in its
	// parent rather than a raised feature).
	Hole bool `json:"hole,omitempty"`

	Bounds      image.Rectangle `json:"-"`
	Area        float64         `json:"area"`
	Perimeter   float64         `json:"perimeter"`
	AspectRatio float64         `json:"aspect_ratio"`
	Extent      float64         `json:"extent"`
	Circularity float64         `json:"circularity"`
	Convexity   float64         `json:"convexity"`

	// CenterX and CenterY locate the region; CenterY orders buttons
	// top-to-bottom in the output.
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`

	// Radius is the equivalent circle radius, meaningful for CircleControl,
	// SmallDot, and Circle-shaped regions.
	Radius float64 `json:"radius,omitempty"`

	// Corners is set for Rectangle-shaped regions.
	Corners CornerRadii `json:"corners,omitempty"`

	// Shadow is measured against the source image, not the mask.
	Shadow ShadowProfile `json:"shadow"`

	// Color is the mean fill color of the region as "#rrggbb". May be
	// empty when sampling was skipped.
	Color string `json:"color,omitempty"`
}

// CornerRadius returns the radius to use for the named corner, honoring the
// uniform collapse. Corner indices run clockwise from top-left.
func (c CornerRadii) CornerRadius(i int) float64 {
	if c.UseUniform {
		return c.Uniform
	}
	switch i {
	case 0:
		return c.TopLeft
	case 1:
		return c.TopRight
	case 2:
		return c.BottomRight
	default:
		return c.BottomLeft
	}
}

// FromContours builds the unclassified region list from traced contours,
// carrying the descriptors and the containment links across. Region IDs
// equal contour indices, so Parent/Children references survive unchanged.
func FromContours(cs []contour.Contour) []Region {
	regions := make([]Region, len(cs))
	for i, c := range cs {
		b := c.Bounds
		regions[i] = Region{
			ID:          i,
			ParentID:    c.Parent,
			ChildIDs:    append([]int(nil), c.Children...),
			Outline:     append([]contour.Point(nil), c.Points...),
			Hole:        c.Hole,
			Bounds:      b,
			Area:        c.Area,
			Perimeter:   c.Perimeter,
			AspectRatio: c.AspectRatio,
			Extent:      c.Extent,
			Circularity: c.Circularity,
			Convexity:   c.Convexity,
			CenterX:     float64(b.Min.X+b.Max.X) / 2,
			CenterY:     c.CenterY,
		}
	}
	return regions
}
