package core

// FloatGrid stores a 2D grid of float64 samples in row-major order.
type FloatGrid struct {
	Rows, Cols int
	data       []float64
}

// NewFloatGrid allocates a zeroed grid with the given dimensions.
func NewFloatGrid(rows, cols int) *FloatGrid {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	return &FloatGrid{Rows: rows, Cols: cols, data: make([]float64, rows*cols)}
}

// Values exposes the backing slice so callers can read/write samples directly.
func (g *FloatGrid) Values() []float64 { return g.data }

// Index returns the linear slice index for (row, col).
func (g *FloatGrid) Index(row, col int) int { return row*g.Cols + col }

// At returns the sample stored at (row, col).
func (g *FloatGrid) At(row, col int) float64 { return g.data[row*g.Cols+col] }

// Clear fills the grid with zeros.
func (g *FloatGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Clone returns an independent copy of the grid.
func (g *FloatGrid) Clone() *FloatGrid {
	out := &FloatGrid{Rows: g.Rows, Cols: g.Cols, data: make([]float64, len(g.data))}
	copy(out.data, g.data)
	return out
}
