package domain

import "fmt"

// Replay rebuilds a position by playing cols on a fresh board, the
// contestants alternating from the given opener.
func Replay(machineFirst bool, cols []int, opts ...Option) (*Board, error) {
	b, err := NewBoard(opts...)
	if err != nil {
		return nil, err
	}
	b.toMove = Human
	if machineFirst {
		b.toMove = Machine
	}

	for i, col := range cols {
		if b.IsGameOver() {
			return nil, fmt.Errorf("%w: move %d played after the end", ErrGameOver, i+1)
		}
		if col < 0 || col >= Columns {
			return nil, fmt.Errorf("%w: move %d column %d", ErrInvalidColumn, i+1, col)
		}
		next, ok := b.play(col)
		if !ok {
			return nil, fmt.Errorf("%w: move %d column %d", ErrColumnFull, i+1, col)
		}
		b = next
	}
	return b, nil
}
