package blockansi

// Grid is the per-cell output of glyph selection in row-major order. It is
// not modified after Renderer.Select returns.
type Grid struct {
	Columns int
	Rows    int
	Cells   []CellChoice
	Font    *Font
	Space   ColorSpace
}

func newGrid(columns, rows int, font *Font, space ColorSpace) *Grid {
	return &Grid{
		Columns: columns,
		Rows:    rows,
		Cells:   make([]CellChoice, columns*rows),
		Font:    font,
		Space:   space,
	}
}

// At returns the choice for the cell at column col and row row.
func (g *Grid) At(col, row int) CellChoice {
	return g.Cells[row*g.Columns+col]
}

// Row returns the choices of one row. The slice aliases the grid.
func (g *Grid) Row(row int) []CellChoice {
	return g.Cells[row*g.Columns : (row+1)*g.Columns]
}

// TotalError sums the reconstruction error over all cells.
func (g *Grid) TotalError() int64 {
	var total int64
	for _, c := range g.Cells {
		total += c.Error
	}
	return total
}
