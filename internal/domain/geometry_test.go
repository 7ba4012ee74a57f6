package domain

import "testing"

func TestStartCoordinatesOrder(t *testing.T) {
	starts := StartCoordinates()
	if len(starts) != Rows+2*Columns-2 {
		t.Fatalf("expected %d start coordinates, got %d", Rows+2*Columns-2, len(starts))
	}

	want := []Coordinate{
		{5, 6}, {5, 5}, {5, 4}, {5, 3}, {5, 2}, {5, 1},
		{5, 0}, {4, 0}, {3, 0}, {2, 0}, {1, 0}, {0, 0},
		{0, 1}, {0, 2}, {0, 3}, {0, 4}, {0, 5}, {0, 6},
	}
	for i := range want {
		if starts[i] != want[i] {
			t.Fatalf("start %d: expected %s, got %s", i, want[i], starts[i])
		}
	}
}

func lineLength(start, dir Coordinate) int {
	n := 0
	for at := start; at.InBounds(); at = at.Add(dir) {
		n++
	}
	return n
}

// Every cell lies on exactly one line per direction family; the only lines
// left out are the single-cell diagonals in the corners.
func TestScanLinesCoverEachLineOnce(t *testing.T) {
	directions := []Coordinate{Vertical, Horizontal, UpDiagonal, DownDiagonal}
	coverage := make(map[Coordinate]*[Rows][Columns]int, len(directions))
	for _, d := range directions {
		coverage[d] = &[Rows][Columns]int{}
	}

	for _, line := range ScanLines() {
		cov, ok := coverage[line.Direction]
		if !ok {
			t.Fatalf("unexpected direction %s", line.Direction)
		}
		if lineLength(line.Start, line.Direction) < 2 {
			t.Fatalf("line from %s towards %s is a single cell", line.Start, line.Direction)
		}
		for at := line.Start; at.InBounds(); at = at.Add(line.Direction) {
			cov[at.Row][at.Col]++
		}
	}

	for _, d := range directions {
		for row := 0; row < Rows; row++ {
			for col := 0; col < Columns; col++ {
				at := Coordinate{Row: row, Col: col}
				back := Coordinate{Row: -d.Row, Col: -d.Col}
				want := 1
				if lineLength(at, d)+lineLength(at, back)-1 < 2 {
					want = 0
				}
				if got := coverage[d][row][col]; got != want {
					t.Fatalf("direction %s, cell %s: covered %d times, want %d", d, at, got, want)
				}
			}
		}
	}
}

func TestScanLinesFamilySizes(t *testing.T) {
	counts := map[Coordinate]int{}
	for _, line := range ScanLines() {
		counts[line.Direction]++
	}

	want := map[Coordinate]int{
		Vertical:     Columns,
		Horizontal:   Rows,
		UpDiagonal:   Rows + Columns - 3,
		DownDiagonal: Rows + Columns - 3,
	}
	for d, n := range want {
		if counts[d] != n {
			t.Fatalf("direction %s: expected %d lines, got %d", d, n, counts[d])
		}
	}
}

func TestCoordinateCompare(t *testing.T) {
	tests := []struct {
		a, b Coordinate
		want int
	}{
		{Coordinate{0, 0}, Coordinate{0, 0}, 0},
		{Coordinate{0, 6}, Coordinate{1, 0}, -1},
		{Coordinate{2, 3}, Coordinate{2, 1}, 1},
		{Coordinate{5, 0}, Coordinate{4, 6}, 1},
	}
	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Fatalf("%s.Compare(%s): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
		if got := tt.a.Less(tt.b); got != (tt.want < 0) {
			t.Fatalf("%s.Less(%s): expected %v", tt.a, tt.b, tt.want < 0)
		}
	}
	if got := (Coordinate{3, 4}).String(); got != "(3, 4)" {
		t.Fatalf("unexpected rendering %q", got)
	}
}
