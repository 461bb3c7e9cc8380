// Package imaging provides the image primitives the detection pipeline is
// built on: cached decoding, grayscale conversion, Gaussian blur, and
// padded cropping with coordinate bookkeeping.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. CropOffset maps
// rectangles between the full frame and a cropped frame.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions are
// stateless and never mutate their inputs, except that Blur and ToGray
// return the input unchanged when no work is needed.
package imaging
