// Package imageutil provides the raster type and resampling helpers used by
// the block conversion pipeline.
package imageutil

import (
	"image"
	"image/color"
	"image/draw"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// ToColor converts RGB to color.RGBA for use with standard library.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// DistanceSq returns the squared Euclidean distance between two colors in
// RGB space.
func (rgb RGB) DistanceSq(other RGB) int {
	dr := int(rgb.R) - int(other.R)
	dg := int(rgb.G) - int(other.G)
	db := int(rgb.B) - int(other.B)
	return dr*dr + dg*dg + db*db
}

// RGBFromColor converts a color.Color to RGB.
func RGBFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
// Images produced by this package are always opaque.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Flatten converts any image.Image to an opaque RGBAImage anchored at the
// origin. Transparent areas are composited over black.
func Flatten(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	dst := NewRGBAImage(bounds.Dx(), bounds.Dy())
	draw.Draw(dst.RGBA, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(dst.RGBA, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y).
func (img *RGBAImage) GetRGB(x, y int) RGB {
	i := img.PixOffset(x, y)
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// SetRGB sets the RGB value at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
}

// Fill paints the rectangle r with c.
func (img *RGBAImage) Fill(r image.Rectangle, c RGB) {
	draw.Draw(img.RGBA, r, &image.Uniform{C: c.ToColor()}, image.Point{}, draw.Src)
}

// Clone creates a deep copy of the image.
func (img *RGBAImage) Clone() *RGBAImage {
	clone := NewRGBAImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}
