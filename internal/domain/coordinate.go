package domain

import "fmt"

// Coordinate is a (row, col) pair, row 0 being the top of the grid.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Compare orders coordinates row-major: first by row, then by column.
func (c Coordinate) Compare(o Coordinate) int {
	switch {
	case c.Row < o.Row:
		return -1
	case c.Row > o.Row:
		return 1
	case c.Col < o.Col:
		return -1
	case c.Col > o.Col:
		return 1
	}
	return 0
}

func (c Coordinate) Less(o Coordinate) bool {
	return c.Compare(o) < 0
}

func (c Coordinate) Add(d Coordinate) Coordinate {
	return Coordinate{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

func (c Coordinate) InBounds() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Columns
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}
