package blockansi

import (
	"image/color"

	"github.com/wbrown/blockansi/imageutil"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB = imageutil.RGB

// rgbToColor converts our RGB type to color.RGBA.
func rgbToColor(rgb RGB) color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// meanRGB returns the rounded per-channel mean of n pixels whose channel
// sums are sum.
func meanRGB(sum [3]int64, n int64) RGB {
	half := n / 2
	return RGB{
		R: uint8((sum[0] + half) / n),
		G: uint8((sum[1] + half) / n),
		B: uint8((sum[2] + half) / n),
	}
}
