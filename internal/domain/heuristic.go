package domain

import "fmt"

// Weights parameterise the board evaluation. Positive scores favour the
// machine.
type Weights struct {
	Offset         int          `json:"offset"`
	MachinePair    int          `json:"machine_pair"`
	MachineTriple  int          `json:"machine_triple"`
	MachineConnect int          `json:"machine_connect"`
	HumanPair      int          `json:"human_pair"`
	HumanTriple    int          `json:"human_triple"`
	HumanConnect   int          `json:"human_connect"`
	MachineWin     int          `json:"machine_win"`
	ColumnWeights  [Columns]int `json:"column_weights"`
}

func DefaultWeights() Weights {
	return Weights{
		Offset:         50,
		MachinePair:    1,
		MachineTriple:  4,
		MachineConnect: 5000,
		HumanPair:      1,
		HumanTriple:    4,
		HumanConnect:   500000,
		MachineWin:     5000000,
		ColumnWeights:  [Columns]int{0, 1, 2, 3, 2, 1, 0},
	}
}

var defaultWeights = DefaultWeights()

// Validate checks that column weights are non-negative and symmetric around
// the centre column.
func (w Weights) Validate() error {
	for c := 0; c < Columns; c++ {
		if w.ColumnWeights[c] < 0 {
			return fmt.Errorf("%w: negative weight %d for column %d", ErrInvalidWeights, w.ColumnWeights[c], c)
		}
		if w.ColumnWeights[c] != w.ColumnWeights[Columns-1-c] {
			return fmt.Errorf("%w: column weights are not symmetric", ErrInvalidWeights)
		}
	}
	return nil
}

// evaluate scores a freshly scanned grid.
func (w *Weights) evaluate(g *grid, s *lineScan) int {
	m, h := s.groups[Machine], s.groups[Human]

	score := w.Offset +
		w.MachinePair*m[0] + w.MachineTriple*m[1] + w.MachineConnect*m[2] -
		w.HumanPair*h[0] - w.HumanTriple*h[1] - w.HumanConnect*h[2]

	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			switch g[row][col] {
			case Machine:
				score += w.ColumnWeights[col]
			case Human:
				score -= w.ColumnWeights[col]
			}
		}
	}

	if m.Wins() && !h.Wins() {
		score += w.MachineWin
	}
	return score
}
