// Package config holds every tunable of the detection pipeline with
// defaults chosen for product photos. Settings load from YAML and are
// validated as a whole; a partial file overrides only what it names.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mask controls the segmentation-mask builder.
//
// Kernel sizes are structuring-element side lengths and must be odd.
// The close kernel is intentionally larger than the open kernel: close
// first to bridge gaps, then open to drop speckle noise.
type Mask struct {
	// BlurRadius is the Gaussian blur radius applied before thresholding
	// and edge detection to suppress sensor noise.
	BlurRadius float64 `yaml:"blur_radius"`

	// EdgeLow and EdgeHigh are the hysteresis thresholds (0-255) for the
	// gradient-magnitude edge detector.
	EdgeLow  int `yaml:"edge_low"`
	EdgeHigh int `yaml:"edge_high"`

	// EdgeDilate bridges small gaps in the edge mask before it is merged
	// with the threshold mask.
	EdgeDilate int `yaml:"edge_dilate"`

	// CloseKernel and OpenKernel clean the combined mask. The defaults
	// (11 and 3) suit the single-main-object mask; the full multi-feature
	// mask uses FeatureCloseKernel/FeatureOpenKernel (5 and 3).
	CloseKernel        int `yaml:"close_kernel"`
	OpenKernel         int `yaml:"open_kernel"`
	FeatureCloseKernel int `yaml:"feature_close_kernel"`
	FeatureOpenKernel  int `yaml:"feature_open_kernel"`
}

// Classify controls the region classifier.
type Classify struct {
	// MinContourArea is the noise floor in px²; traced boundaries enclosing
	// less area are dropped before classification.
	MinContourArea float64 `yaml:"min_contour_area"`

	// Circular-candidate gate.
	CircleAspectMin    float64 `yaml:"circle_aspect_min"`
	CircleAspectMax    float64 `yaml:"circle_aspect_max"`
	CircleCircularity  float64 `yaml:"circle_circularity"`
	CircleConvexityMin float64 `yaml:"circle_convexity_min"`

	// DotAreaMax splits circular candidates into dots (below) and discs.
	DotAreaMax float64 `yaml:"dot_area_max"`

	// DotDistanceFactor scales the CircleControl radius when deciding
	// whether a dot belongs to the control cluster.
	DotDistanceFactor float64 `yaml:"dot_distance_factor"`

	// DotEdgeMargin excludes dots whose horizontal center falls within this
	// many pixels of the body's left or right edge (scan-line artifacts).
	// Top/bottom edges are deliberately not checked; see DESIGN.md.
	DotEdgeMargin float64 `yaml:"dot_edge_margin"`

	// BodyConvexityMin optionally rejects a body candidate whose convexity
	// falls below the threshold. Zero disables the guard, matching the
	// observed behavior of always trusting the largest contour.
	BodyConvexityMin float64 `yaml:"body_convexity_min"`
}

// Shape controls shape inference.
type Shape struct {
	CircleCircularity float64 `yaml:"circle_circularity"`

	// ApproxEpsilonFactor scales the perimeter to get the polygon
	// approximation tolerance.
	ApproxEpsilonFactor float64 `yaml:"approx_epsilon_factor"`

	LineAspect float64 `yaml:"line_aspect"`
	LineExtent float64 `yaml:"line_extent"`

	// RectFillMin is the minimum polygon-to-bounding-box area ratio for a
	// 4-vertex approximation to count as a rectangle.
	RectFillMin float64 `yaml:"rect_fill_min"`

	// Rounded-square button gate.
	RoundedRectCircMin   float64 `yaml:"rounded_rect_circ_min"`
	RoundedRectCircMax   float64 `yaml:"rounded_rect_circ_max"`
	RoundedRectExtentMin float64 `yaml:"rounded_rect_extent_min"`
	RoundedRectAspectMin float64 `yaml:"rounded_rect_aspect_min"`
	RoundedRectAspectMax float64 `yaml:"rounded_rect_aspect_max"`

	// Cross gate.
	CrossDefectsMin   int     `yaml:"cross_defects_min"`
	CrossDefectDepth  float64 `yaml:"cross_defect_depth"`
	CrossAspectMin    float64 `yaml:"cross_aspect_min"`
	CrossAspectMax    float64 `yaml:"cross_aspect_max"`
	CrossConvexityMin float64 `yaml:"cross_convexity_min"`
	CrossConvexityMax float64 `yaml:"cross_convexity_max"`
}

// Corners controls the corner-radius estimator.
type Corners struct {
	// WindowDivisor sets the corner window side to min(w,h)/WindowDivisor.
	WindowDivisor int `yaml:"window_divisor"`

	// MinPoints is the minimum number of boundary points required in a
	// corner window before fitting; below it the default radius applies.
	MinPoints int `yaml:"min_points"`

	// DefaultRadiusFrac is the fallback radius as a fraction of min(w,h).
	DefaultRadiusFrac float64 `yaml:"default_radius_frac"`

	// Percentile of the corner-distance distribution used for the fit.
	Percentile float64 `yaml:"percentile"`

	// Clamp bounds: [ClampMin, min(w,h)/ClampDivisor].
	ClampMin     float64 `yaml:"clamp_min"`
	ClampDivisor float64 `yaml:"clamp_divisor"`

	// UniformStdFrac collapses the four radii into one when their standard
	// deviation is below this fraction of their mean.
	UniformStdFrac float64 `yaml:"uniform_std_frac"`
}

// Shadow controls the shadow profile estimator.
type Shadow struct {
	// EdgeSamples is the number of equally spaced sample points per
	// bounding-box edge.
	EdgeSamples int `yaml:"edge_samples"`

	// CenterSamples is the number of interior samples for the brightness
	// baseline.
	CenterSamples int `yaml:"center_samples"`

	// SampleDistance is how far inside/outside the boundary to sample.
	SampleDistance int `yaml:"sample_distance"`

	// InnerDelta is the minimum top/bottom darkening versus the center
	// baseline to flag an inner shadow; InnerScale maps darkness to a
	// 0-1 strength.
	InnerDelta float64 `yaml:"inner_delta"`
	InnerScale float64 `yaml:"inner_scale"`

	// OuterDelta is the minimum outside darkness (255-brightness) to flag
	// an outer shadow on an edge; OuterScale maps darkness to strength.
	OuterDelta float64 `yaml:"outer_delta"`
	OuterScale float64 `yaml:"outer_scale"`
}

// MainObject controls the single-main-object detection mode.
type MainObject struct {
	// Candidate area bounds as fractions of the image area.
	MinAreaRatio float64 `yaml:"min_area_ratio"`
	MaxAreaRatio float64 `yaml:"max_area_ratio"`

	AspectMin float64 `yaml:"aspect_min"`
	AspectMax float64 `yaml:"aspect_max"`

	// ExtentMin applies to the first pass; FallbackExtentMin to the relaxed
	// edge-mask pass.
	ExtentMin         float64 `yaml:"extent_min"`
	FallbackExtentMin float64 `yaml:"fallback_extent_min"`

	// CropPadding expands the body bounding box when cropping.
	CropPadding int `yaml:"crop_padding"`
}

// Config carries every tunable constant of the pipeline. The zero value is
// not usable; start from Default().
type Config struct {
	Mask       Mask       `yaml:"mask"`
	Classify   Classify   `yaml:"classify"`
	Shape      Shape      `yaml:"shape"`
	Corners    Corners    `yaml:"corners"`
	Shadow     Shadow     `yaml:"shadow"`
	MainObject MainObject `yaml:"main_object"`

	// Parallel annotates retained regions concurrently. The output is
	// identical either way; the stages are independent per region.
	Parallel bool `yaml:"parallel"`
}

// Default returns the configuration with the empirical constants the
// detection heuristics were tuned with.
func Default() Config {
	return Config{
		Mask: Mask{
			BlurRadius:         1.5,
			EdgeLow:            50,
			EdgeHigh:           150,
			EdgeDilate:         3,
			CloseKernel:        11,
			OpenKernel:         3,
			FeatureCloseKernel: 5,
			FeatureOpenKernel:  3,
		},
		Classify: Classify{
			MinContourArea:     10,
			CircleAspectMin:    0.6,
			CircleAspectMax:    1.4,
			CircleCircularity:  0.4,
			CircleConvexityMin: 0.75,
			DotAreaMax:         500,
			DotDistanceFactor:  1.2,
			DotEdgeMargin:      15,
			BodyConvexityMin:   0,
		},
		Shape: Shape{
			CircleCircularity:    0.85,
			ApproxEpsilonFactor:  0.04,
			LineAspect:           3.0,
			LineExtent:           0.5,
			RectFillMin:          0.75,
			RoundedRectCircMin:   0.6,
			RoundedRectCircMax:   0.85,
			RoundedRectExtentMin: 0.70,
			RoundedRectAspectMin: 0.7,
			RoundedRectAspectMax: 1.4,
			CrossDefectsMin:      4,
			CrossDefectDepth:     3,
			CrossAspectMin:       0.7,
			CrossAspectMax:       1.3,
			CrossConvexityMin:    0.5,
			CrossConvexityMax:    0.85,
		},
		Corners: Corners{
			WindowDivisor:     6,
			MinPoints:         5,
			DefaultRadiusFrac: 0.08,
			Percentile:        0.25,
			ClampMin:          5,
			ClampDivisor:      3,
			UniformStdFrac:    0.2,
		},
		Shadow: Shadow{
			EdgeSamples:    20,
			CenterSamples:  10,
			SampleDistance: 3,
			InnerDelta:     10,
			InnerScale:     50,
			OuterDelta:     30,
			OuterScale:     100,
		},
		MainObject: MainObject{
			MinAreaRatio:      0.03,
			MaxAreaRatio:      0.9,
			AspectMin:         0.2,
			AspectMax:         5.0,
			ExtentMin:         0.5,
			FallbackExtentMin: 0.3,
			CropPadding:       10,
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults, so a file
// only needs to name the values it changes.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	for _, k := range []int{c.Mask.CloseKernel, c.Mask.OpenKernel, c.Mask.FeatureCloseKernel, c.Mask.FeatureOpenKernel} {
		if k < 1 || k%2 == 0 {
			return fmt.Errorf("morphology kernel sizes must be odd and positive, got %d", k)
		}
	}
	if c.Mask.EdgeLow >= c.Mask.EdgeHigh {
		return fmt.Errorf("edge_low (%d) must be below edge_high (%d)", c.Mask.EdgeLow, c.Mask.EdgeHigh)
	}
	if c.Corners.Percentile <= 0 || c.Corners.Percentile >= 1 {
		return fmt.Errorf("corner percentile must be in (0,1), got %g", c.Corners.Percentile)
	}
	return nil
}
