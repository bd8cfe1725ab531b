package wake

import "testing"

func TestGridIndexIdentityBeforeRotation(t *testing.T) {
	g := newGrid(4, 3)
	for row := 0; row < 4; row++ {
		for col := 0; col < 3; col++ {
			if got := g.Index(row, col); got != row*3+col {
				t.Errorf("(%d,%d): expected %d, got %d", row, col, row*3+col, got)
			}
		}
	}
}

func TestGridRotationShiftsRows(t *testing.T) {
	g := newGrid(4, 3)
	before := make(map[int]int)
	for row := 0; row < 4; row++ {
		before[row] = g.Index(row, 0)
	}

	g.Rotate()

	// Logical row r now resolves to the storage that held row r-1, and
	// row 0 reuses the storage of the previous last row.
	for row := 1; row < 4; row++ {
		if g.Index(row, 0) != before[row-1] {
			t.Errorf("row %d should map to old row %d storage", row, row-1)
		}
	}
	if g.Index(0, 0) != before[3] {
		t.Errorf("row 0 should reuse the old last row storage")
	}
}

func TestGridFullRotationCycle(t *testing.T) {
	g := newGrid(5, 2)
	original := g.Index(2, 1)

	for i := 0; i < 5; i++ {
		g.Rotate()
	}
	if g.Index(2, 1) != original {
		t.Error("rotating through all rows should return to the original mapping")
	}
}

func TestGridReverseIndex(t *testing.T) {
	g := newGrid(6, 4)
	g.Rotate()
	g.Rotate()

	for row := 0; row < 6; row++ {
		for col := 0; col < 4; col++ {
			flat := g.Index(row, col)
			gotRow, gotCol := g.ReverseIndex(flat)
			if gotRow != row || gotCol != col {
				t.Errorf("(%d,%d) -> %d -> (%d,%d)", row, col, flat, gotRow, gotCol)
			}
		}
	}
}
