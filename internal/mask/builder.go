// Package mask builds the binary segmentation mask the contour extractor
// traces. Two independent binarizations are combined: a polarity-corrected
// global Otsu threshold (catches the solid product body) and a dilated Canny
// edge mask (catches low-contrast features the threshold misses). Their
// union is cleaned with a morphological close followed by an open.
package mask

import (
	"image"

	"productvec/internal/config"
	"productvec/internal/imaging"
)

// Build produces the cleaned segmentation mask for full multi-feature
// extraction. An all-black or all-white frame simply yields an empty mask;
// the contour extractor treats that as zero regions, not an error.
func Build(gray *image.Gray, cfg config.Mask) *image.Gray {
	blurred := imaging.Blur(gray, cfg.BlurRadius)

	thresh := Threshold(blurred)
	edges := Dilate(EdgeDetect(blurred, cfg.EdgeLow, cfg.EdgeHigh), cfg.EdgeDilate)

	combined := Union(thresh, edges)
	combined = Close(combined, cfg.FeatureCloseKernel)
	combined = Open(combined, cfg.FeatureOpenKernel)
	return combined
}

// BuildMain produces the mask tuned for single-main-object detection: the
// same union but with the larger close kernel, so the body comes out as one
// solid blob even across specular highlights.
func BuildMain(gray *image.Gray, cfg config.Mask) *image.Gray {
	blurred := imaging.Blur(gray, cfg.BlurRadius)

	thresh := Threshold(blurred)
	edges := Dilate(EdgeDetect(blurred, cfg.EdgeLow, cfg.EdgeHigh), cfg.EdgeDilate)

	combined := Union(thresh, edges)
	combined = Close(combined, cfg.CloseKernel)
	combined = Open(combined, cfg.OpenKernel)
	return combined
}

// BuildThresholdOnly binarizes without the edge union. The main-object
// detector's first pass runs on this, matching its strict extent filter.
func BuildThresholdOnly(gray *image.Gray, cfg config.Mask) *image.Gray {
	blurred := imaging.Blur(gray, cfg.BlurRadius)
	thresh := Threshold(blurred)
	thresh = Close(thresh, cfg.CloseKernel)
	thresh = Open(thresh, cfg.OpenKernel)
	return thresh
}

// BuildEdgeOnly returns the dilated, closed edge mask. The main-object
// detector falls back to this when the threshold mask finds no candidate;
// the close bridges the edge ring so the enclosed blob traces as one
// boundary.
func BuildEdgeOnly(gray *image.Gray, cfg config.Mask) *image.Gray {
	blurred := imaging.Blur(gray, cfg.BlurRadius)
	edges := Dilate(EdgeDetect(blurred, cfg.EdgeLow, cfg.EdgeHigh), cfg.EdgeDilate)
	return Close(edges, cfg.CloseKernel)
}
