package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationAuto picks InterpolationArea for an axis that shrinks and
	// InterpolationLinear for an axis that grows.
	InterpolationAuto Interpolation = iota

	// InterpolationArea averages every source pixel covered by a
	// destination pixel (box filter). Equivalent to OpenCV's INTER_AREA
	// when downscaling.
	InterpolationArea

	// InterpolationLinear uses bilinear interpolation.
	// Equivalent to OpenCV's INTER_LINEAR.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	InterpolationNearest
)

// Box is a box-filter kernel. When the destination is smaller than the
// source, draw.Kernel widens the support by the scale factor so each
// destination pixel becomes the mean of the source pixels it covers.
var Box = &draw.Kernel{
	Support: 0.5,
	At: func(float64) float64 {
		return 1
	},
}

func scalerFor(interp Interpolation, srcLen, dstLen int) draw.Scaler {
	switch interp {
	case InterpolationArea:
		return Box
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	}
	if dstLen < srcLen {
		return Box
	}
	return draw.BiLinear
}

// Resize resizes an image to width x height, choosing the filter per axis:
// box averaging when an axis shrinks, bilinear when it grows.
func Resize(img *RGBAImage, width, height int) *RGBAImage {
	return ResizeWith(img, width, height, InterpolationAuto)
}

// ResizeWith resizes an image with the given interpolation method. The
// horizontal and vertical passes run separately so each axis gets the
// filter suited to its own scale factor.
func ResizeWith(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	srcW, srcH := img.Width(), img.Height()
	if width == srcW && height == srcH {
		return img.Clone()
	}

	horiz := img
	if width != srcW {
		horiz = NewRGBAImage(width, srcH)
		scalerFor(interp, srcW, width).Scale(
			horiz.RGBA, horiz.Bounds(), img.RGBA, img.Bounds(), draw.Src, nil)
	}
	if height == srcH {
		return horiz
	}

	dst := NewRGBAImage(width, height)
	scalerFor(interp, srcH, height).Scale(
		dst.RGBA, image.Rect(0, 0, width, height), horiz.RGBA, horiz.Bounds(), draw.Src, nil)
	return dst
}
