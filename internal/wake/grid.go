package wake

// grid addresses a streamwise-major structured surface of wake rows. Rows
// rotate instead of being copied when the wake streams downstream: Rotate
// shifts the logical-to-physical row mapping by one, so the storage of the
// oldest row is reused for the newest without moving the interior rows.
type grid struct {
	rows  int
	width int
	start int
}

func newGrid(rows, width int) grid {
	return grid{rows: rows, width: width}
}

// Index maps a logical (row, column) pair to a flat storage index.
func (g grid) Index(row, col int) int {
	return ((g.start+row)%g.rows)*g.width + col
}

// Rotate advances the mapping so that logical row i now resolves to the
// storage previously holding row i-1. The storage of the last row becomes
// logical row 0.
func (g *grid) Rotate() {
	g.start = (g.start - 1 + g.rows) % g.rows
}

func (g grid) NrElements() int { return g.rows * g.width }
func (g grid) Rows() int       { return g.rows }
func (g grid) Width() int      { return g.width }

// ReverseIndex is the inverse of Index.
func (g grid) ReverseIndex(flat int) (row, col int) {
	physRow := flat / g.width
	col = flat % g.width
	row = (physRow - g.start + g.rows) % g.rows
	return row, col
}
