package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropOffset records where a crop window sat in the source image, so that
// region coordinates detected on the full image can be shifted into the
// cropped frame (or vice versa).
type CropOffset struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CropPadded crops an image to the given rectangle expanded by padding on
// every side, clamped to the image bounds. It returns the cropped image and
// the offset of the crop window.
func CropPadded(img image.Image, rect image.Rectangle, padding int) (image.Image, CropOffset, error) {
	bounds := img.Bounds()
	window := rect.Inset(-padding).Intersect(bounds)
	if window.Empty() {
		return nil, CropOffset{}, fmt.Errorf("crop window %v outside image bounds %v", rect, bounds)
	}

	cropped := imaging.Crop(img, window)
	off := CropOffset{
		X:      window.Min.X - bounds.Min.X,
		Y:      window.Min.Y - bounds.Min.Y,
		Width:  window.Dx(),
		Height: window.Dy(),
	}
	return cropped, off, nil
}

// Resize scales an image to the given width and height using Lanczos
// resampling. Either dimension may be zero to preserve aspect ratio.
func Resize(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// Shift translates a rectangle by the crop offset, mapping full-image
// coordinates into the cropped frame.
func (o CropOffset) Shift(r image.Rectangle) image.Rectangle {
	return r.Sub(image.Pt(o.X, o.Y))
}

// Contains reports whether any part of the (already shifted) rectangle is
// visible inside the crop window.
func (o CropOffset) Contains(r image.Rectangle) bool {
	return r.Overlaps(image.Rect(0, 0, o.Width, o.Height))
}
