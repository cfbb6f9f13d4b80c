package core

// Cells returns the number of cells in the grid.
func (s Size) Cells() int {
	if s.W <= 0 || s.H <= 0 {
		return 0
	}
	return s.W * s.H
}

// Index returns the row-major slice index for column x and row y.
func (s Size) Index(x, y int) int { return y*s.W + x }

// Coords is the inverse of Index.
func (s Size) Coords(idx int) (x, y int) { return idx % s.W, idx / s.W }
