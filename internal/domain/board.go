package domain

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Board is one immutable state of a game. Every operation that plays a token
// or changes a setting returns a new Board; the receiver is never modified,
// so boards can be shared freely between goroutines and search branches.
type Board struct {
	grid       grid
	toMove     PlayerID
	level      int
	tokens     int
	evaluation int
	groups     [Machine + 1]Groups
	witness    []Coordinate
	weights    *Weights
}

type Option func(*Board) error

func WithLevel(level int) Option {
	return func(b *Board) error {
		if level < 1 || level > MaxLevel {
			return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidLevel, level, MaxLevel)
		}
		b.level = level
		return nil
	}
}

func WithWeights(w Weights) Option {
	return func(b *Board) error {
		if err := w.Validate(); err != nil {
			return err
		}
		b.weights = &w
		return nil
	}
}

// NewBoard returns an empty board. Nobody is to move yet: whichever
// contestant plays first fixes the turn order.
func NewBoard(opts ...Option) (*Board, error) {
	b := &Board{
		level:   DefaultLevel,
		weights: &defaultWeights,
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	b.rescan()
	return b, nil
}

// Move drops a human token into col. ok is false when the column is already
// full; the receiver is then still the current state and the caller should
// ask for another column.
func (b *Board) Move(col int) (next *Board, ok bool, err error) {
	if err := b.checkTurn(Human); err != nil {
		return nil, false, err
	}
	if col < 0 || col >= Columns {
		return nil, false, fmt.Errorf("%w: %d", ErrInvalidColumn, col)
	}
	next, ok = b.play(col)
	return next, ok, nil
}

// MachineMove searches the game tree to the configured level and plays the
// best column for the machine. The search checks ctx once per node and
// returns ctx.Err() when cancelled.
func (b *Board) MachineMove(ctx context.Context) (next *Board, ok bool, err error) {
	if err := b.checkTurn(Machine); err != nil {
		return nil, false, err
	}

	mover := b.clone()
	mover.toMove = Machine

	analysis, err := mover.search(ctx)
	if err != nil {
		return nil, false, err
	}

	next, ok = mover.play(analysis.Column)
	if !ok {
		return nil, false, fmt.Errorf("%w: column %d chosen but full", ErrNoLegalMove, analysis.Column)
	}
	return next, true, nil
}

// SetLevel returns a copy of the board searching n plies deep.
func (b *Board) SetLevel(n int) (*Board, error) {
	next := b.clone()
	if err := WithLevel(n)(next); err != nil {
		return nil, err
	}
	return next, nil
}

func (b *Board) checkTurn(p PlayerID) error {
	if b.IsGameOver() {
		return ErrGameOver
	}
	if b.toMove != Empty && b.toMove != p {
		return fmt.Errorf("%w: %s is to move", ErrNotYourTurn, b.toMove)
	}
	return nil
}

// play drops a token for the contestant to move (the human on a fresh board)
// without checking preconditions. Returns false if col is full.
func (b *Board) play(col int) (*Board, bool) {
	mover := b.toMove
	if mover == Empty {
		mover = Human
	}

	row := b.lowestEmptyRow(col)
	if row < 0 {
		return nil, false
	}

	next := b.clone()
	next.grid[row][col] = mover
	next.tokens++
	next.toMove = mover.Opponent()
	next.rescan()
	return next, true
}

func (b *Board) lowestEmptyRow(col int) int {
	for row := Rows - 1; row >= 0; row-- {
		if b.grid[row][col] == Empty {
			return row
		}
	}
	return -1
}

// clone is shallow: the witness slice is replaced, never written to, once a
// scan has produced it.
func (b *Board) clone() *Board {
	next := *b
	return &next
}

func (b *Board) rescan() {
	s := scanGrid(&b.grid)
	b.groups = s.groups
	b.witness = s.witness
	b.evaluation = b.weights.evaluate(&b.grid, &s)
}

// IsGameOver is true when the top row is full or a contestant has won.
func (b *Board) IsGameOver() bool {
	return b.isFull() || b.Winner() != Empty
}

func (b *Board) isFull() bool {
	for col := 0; col < Columns; col++ {
		if b.grid[0][col] == Empty {
			return false
		}
	}
	return true
}

// Winner returns Empty while the game is running and after a tie.
func (b *Board) Winner() PlayerID {
	switch {
	case b.groups[Human].Wins():
		return Human
	case b.groups[Machine].Wins():
		return Machine
	default:
		return Empty
	}
}

// Witness returns the Connect coordinates of a winning run, sorted
// row-major. Asking for a witness without a winner is a programming error.
func (b *Board) Witness() ([]Coordinate, error) {
	if b.Winner() == Empty || len(b.witness) == 0 {
		return nil, ErrNoWinner
	}
	out := slices.Clone(b.witness)
	slices.SortFunc(out, Coordinate.Compare)
	return out, nil
}

func (b *Board) Slot(row, col int) (PlayerID, error) {
	at := Coordinate{Row: row, Col: col}
	if !at.InBounds() {
		return Empty, fmt.Errorf("%w: %s", ErrOutOfBounds, at)
	}
	return b.grid[row][col], nil
}

// ToMove is Empty until the first token has been played.
func (b *Board) ToMove() PlayerID { return b.toMove }

func (b *Board) Level() int { return b.level }

func (b *Board) Tokens() int { return b.tokens }

// Evaluation is the cached heuristic score; positive favours the machine.
func (b *Board) Evaluation() int { return b.evaluation }

func (b *Board) Weights() Weights { return *b.weights }

func (b *Board) Groups(p PlayerID) Groups {
	if p != Human && p != Machine {
		return Groups{}
	}
	return b.groups[p]
}

// LegalColumns lists the columns that still have room, left to right.
func (b *Board) LegalColumns() []int {
	cols := make([]int, 0, Columns)
	for col := 0; col < Columns; col++ {
		if b.grid[0][col] == Empty {
			cols = append(cols, col)
		}
	}
	return cols
}

// Cells returns a copy of the grid, row 0 at the top.
func (b *Board) Cells() [Rows][Columns]PlayerID {
	return b.grid
}

// String renders one line per row, top row first, symbols separated by a
// single space.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Rows * Columns * 2)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.grid[row][col].Symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
