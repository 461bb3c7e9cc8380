// Package pipeline wires the detection stages together: a photo goes in,
// classified and annotated regions come out. The stages themselves live in
// their own packages; this one only decides what runs, in what order, and
// on which pixels.
package pipeline

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"

	"productvec/internal/config"
	"productvec/internal/contour"
	"productvec/internal/imaging"
	"productvec/internal/mask"
	"productvec/internal/palette"
	"productvec/internal/region"
)

// Result is the detection output for one image.
type Result struct {
	// Width and Height are the analyzed image dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Regions holds every traced region, classified and annotated.
	// Indices equal region IDs.
	Regions []region.Region `json:"regions"`

	// BodyID indexes the body region, -1 when none was found.
	BodyID int `json:"body_id"`
}

// Detect runs the full multi-feature pipeline on img.
//
// A frame with nothing on it is not an error: the result simply carries
// zero regions and BodyID -1, and the caller renders an empty document.
// The per-region annotation stages (shape, corners, shadow, color) are
// independent of each other, so with cfg.Parallel they fan out across an
// errgroup; output is identical either way.
func Detect(ctx context.Context, img image.Image, cfg config.Config) (*Result, error) {
	gray := imaging.Grayscale(img)
	m := mask.Build(gray, cfg.Mask)
	cs := contour.Trace(m, cfg.Classify.MinContourArea)

	regions := region.FromContours(cs)
	region.Classify(regions, cfg.Classify)

	res := &Result{
		Width:   img.Bounds().Dx(),
		Height:  img.Bounds().Dy(),
		Regions: regions,
		BodyID:  -1,
	}
	for i := range regions {
		if regions[i].Role == region.Body {
			res.BodyID = i
			break
		}
	}

	sampler := palette.New(img)
	if cfg.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i := range regions {
			r := &regions[i]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				annotate(r, gray, sampler, cfg)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range regions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			annotate(&regions[i], gray, sampler, cfg)
		}
	}
	return res, nil
}

// annotate fills in the rendering attributes of one region. Discarded
// regions and holes of discarded parents are left bare; they never render.
func annotate(r *region.Region, gray *image.Gray, sampler *palette.Sampler, cfg config.Config) {
	if r.Role == region.Discarded {
		return
	}

	// Classification fixes the shape for the body, the control, and the
	// dots; only the rest goes through inference.
	switch r.Role {
	case region.Body, region.CircleControl, region.SmallDot:
	default:
		region.InferShape(r, cfg.Shape)
	}

	if r.Shape == region.Rectangle {
		region.EstimateCorners(r, cfg.Corners)
	}
	// Dots are too small to cast readable shadows; only surfaces get a
	// profile.
	switch r.Role {
	case region.Body, region.CircleControl, region.Button:
		region.EstimateShadow(r, gray, cfg.Shadow)
	}
	r.Color = sampler.RegionColor(r)
}
