package domain

var (
	Vertical     = Coordinate{Row: 1, Col: 0}
	Horizontal   = Coordinate{Row: 0, Col: 1}
	UpDiagonal   = Coordinate{Row: -1, Col: 1}
	DownDiagonal = Coordinate{Row: 1, Col: 1}
)

// ScanLine is the start of one maximal line together with its direction.
type ScanLine struct {
	Start     Coordinate
	Direction Coordinate
}

// scanLines covers every vertical, horizontal and diagonal line of the grid
// exactly once. Computed at init and never modified.
var scanLines = calculateScanLines()

// calculateStartCoordinates returns one start per diagonal index, walking the
// left column upwards and then the top row to the right, with the bottom row
// starts of columns 1..Columns-1 prepended (rightmost first):
//
//	(5,6) (5,5) ... (5,1) (5,0) (4,0) ... (0,0) (0,1) ... (0,6)
func calculateStartCoordinates() []Coordinate {
	diagCount := Rows + Columns - 1

	starts := make([]Coordinate, 0, diagCount+Columns-1)
	for col := Columns - 1; col >= 1; col-- {
		starts = append(starts, Coordinate{Row: Rows - 1, Col: col})
	}
	for diag := 0; diag < diagCount; diag++ {
		starts = append(starts, Coordinate{
			Row: max(Rows-1-diag, 0),
			Col: max(diag-Rows+1, 0),
		})
	}
	return starts
}

// calculateScanLines pairs each start coordinate with the directions that
// validly begin there. The index ranges below select:
//
//	up-diagonal    bottom row and left column, without the (Rows-1,Columns-1)
//	               and (0,0) single-cell corners
//	horizontal     left column
//	down-diagonal  left column and top row, without the (Rows-1,0) and
//	               (0,Columns-1) single-cell corners
//	vertical       top row
func calculateScanLines() []ScanLine {
	starts := calculateStartCoordinates()
	corner := Rows + Columns - 2 // index of (0,0)
	last := len(starts) - 1

	var lines []ScanLine
	for i, start := range starts {
		if i >= 1 && i < corner {
			lines = append(lines, ScanLine{Start: start, Direction: UpDiagonal})
		}
		if i >= Columns-1 && i <= corner {
			lines = append(lines, ScanLine{Start: start, Direction: Horizontal})
		}
		if i >= Columns && i < last {
			lines = append(lines, ScanLine{Start: start, Direction: DownDiagonal})
		}
		if i >= corner {
			lines = append(lines, ScanLine{Start: start, Direction: Vertical})
		}
	}
	return lines
}

// StartCoordinates returns a copy of the ordered start coordinate list.
func StartCoordinates() []Coordinate {
	return calculateStartCoordinates()
}

// ScanLines returns a copy of the precomputed line geometry.
func ScanLines() []ScanLine {
	out := make([]ScanLine, len(scanLines))
	copy(out, scanLines)
	return out
}
