package blockansi

import (
	"image"
)

// Render draws the grid back into a bitmap using the grid font's masks:
// foreground bits take the cell's foreground color, the rest its
// background. The result has the dimensions of the resampled raster.
func (g *Grid) Render() *image.RGBA {
	return g.RenderScaled(1)
}

// RenderScaled renders the grid with every cell pixel drawn as a
// scale x scale square.
func (g *Grid) RenderScaled(scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}

	cellW, cellH := g.Font.Width()*scale, g.Font.Height()*scale
	img := image.NewRGBA(image.Rect(0, 0, g.Columns*cellW, g.Rows*cellH))

	for row := 0; row < g.Rows; row++ {
		for col, c := range g.Row(row) {
			renderChar(img, g.Font, c, col*cellW, row*cellH, scale)
		}
	}

	return img
}

// renderChar renders a single cell with its colors at the given position.
func renderChar(img *image.RGBA, f *Font, c CellChoice, startX, startY, scale int) {
	bitmap := f.Bitmap(c.Glyph)
	fg, bg := rgbToColor(c.FG.RGB), rgbToColor(c.BG.RGB)

	for y := 0; y < f.Height(); y++ {
		for x := 0; x < f.Width(); x++ {
			col := bg
			if bitmap.getBit(x, y) {
				col = fg
			}
			for sy := 0; sy < scale; sy++ {
				off := img.PixOffset(startX+x*scale, startY+y*scale+sy)
				for sx := 0; sx < scale; sx++ {
					img.Pix[off] = col.R
					img.Pix[off+1] = col.G
					img.Pix[off+2] = col.B
					img.Pix[off+3] = 255
					off += 4
				}
			}
		}
	}
}
