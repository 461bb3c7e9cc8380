package pipeline

import (
	"errors"
	"image"

	"productvec/internal/config"
	"productvec/internal/contour"
	"productvec/internal/imaging"
	"productvec/internal/mask"
	"productvec/internal/region"
)

// ErrNoBody reports that no contour passed the main-object filters on
// either pass. Callers degrade gracefully (analyze the full frame) instead
// of failing the request.
var ErrNoBody = errors.New("no main object candidate found")

// DetectMainObject finds the single dominant object in a product photo.
//
// The first pass runs on the threshold mask with a strict extent filter.
// Photos with busy or gradient backgrounds can defeat the global threshold,
// so a second pass relaxes the extent floor and runs on the closed edge
// mask instead. Candidates must occupy a sane fraction of the frame and a
// sane aspect ratio either way; the largest survivor wins.
func DetectMainObject(img image.Image, cfg config.Config) (*region.Region, error) {
	gray := imaging.Grayscale(img)
	imgArea := float64(img.Bounds().Dx() * img.Bounds().Dy())
	if imgArea == 0 {
		return nil, ErrNoBody
	}

	mo := cfg.MainObject
	if r := pickMain(mask.BuildThresholdOnly(gray, cfg.Mask), imgArea, mo, mo.ExtentMin, cfg.Classify.MinContourArea); r != nil {
		return r, nil
	}
	if r := pickMain(mask.BuildEdgeOnly(gray, cfg.Mask), imgArea, mo, mo.FallbackExtentMin, cfg.Classify.MinContourArea); r != nil {
		return r, nil
	}
	return nil, ErrNoBody
}

func pickMain(m *image.Gray, imgArea float64, mo config.MainObject, extentMin, minArea float64) *region.Region {
	cs := contour.Trace(m, minArea)
	best := -1
	for i, c := range cs {
		if c.Hole {
			continue
		}
		ratio := c.Area / imgArea
		if ratio < mo.MinAreaRatio || ratio > mo.MaxAreaRatio {
			continue
		}
		if c.AspectRatio < mo.AspectMin || c.AspectRatio > mo.AspectMax {
			continue
		}
		if c.Extent <= extentMin {
			continue
		}
		if best < 0 || c.Area > cs[best].Area {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	regions := region.FromContours(cs)
	r := regions[best]
	r.Role = region.Body
	r.Shape = region.Rectangle
	return &r
}

// CropToBody crops the image to the body bounding box expanded by the
// configured padding, returning the crop and where it sat in the source.
func CropToBody(img image.Image, body *region.Region, cfg config.Config) (image.Image, imaging.CropOffset, error) {
	return imaging.CropPadded(img, body.Bounds, cfg.MainObject.CropPadding)
}

// ShiftRegions maps regions detected on the full frame into the cropped
// frame and drops the ones that fall entirely outside it. IDs are not
// renumbered; parent links to dropped regions become -1.
func ShiftRegions(regions []region.Region, off imaging.CropOffset) []region.Region {
	kept := make(map[int]bool, len(regions))
	out := make([]region.Region, 0, len(regions))
	for _, r := range regions {
		shifted := off.Shift(r.Bounds)
		if !off.Contains(shifted) {
			continue
		}
		r.Bounds = shifted
		r.CenterX -= float64(off.X)
		r.CenterY -= float64(off.Y)
		pts := make([]contour.Point, len(r.Outline))
		for i, p := range r.Outline {
			pts[i] = contour.Point{X: p.X - off.X, Y: p.Y - off.Y}
		}
		r.Outline = pts
		kept[r.ID] = true
		out = append(out, r)
	}
	for i := range out {
		if out[i].ParentID >= 0 && !kept[out[i].ParentID] {
			out[i].ParentID = -1
		}
		var children []int
		for _, c := range out[i].ChildIDs {
			if kept[c] {
				children = append(children, c)
			}
		}
		out[i].ChildIDs = children
	}
	return out
}
