package domain

import "errors"

// PlayerID identifies the occupant of a slot and the contestant to move.
type PlayerID int

const (
	Empty   PlayerID = 0
	Human   PlayerID = 1
	Machine PlayerID = 2
)

const (
	Rows    = 6
	Columns = 7
	Connect = 4
)

const (
	MaxLevel     = 5
	DefaultLevel = 4
)

// Opponent returns the other contestant; Empty has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Human:
		return Machine
	case Machine:
		return Human
	default:
		return Empty
	}
}

// Symbol is the single character used by text renderings.
func (p PlayerID) Symbol() string {
	switch p {
	case Human:
		return "X"
	case Machine:
		return "O"
	default:
		return "."
	}
}

func (p PlayerID) String() string {
	switch p {
	case Human:
		return "human"
	case Machine:
		return "machine"
	default:
		return "none"
	}
}

// basic errors that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrNotYourTurn    Error = "not your turn"
	ErrGameOver       Error = "game is over"
	ErrInvalidColumn  Error = "column out of bounds"
	ErrInvalidLevel   Error = "level out of range"
	ErrOutOfBounds    Error = "slot out of bounds"
	ErrInvalidWeights Error = "invalid heuristic weights"
	ErrColumnFull     Error = "column is full"

	// internal consistency faults
	ErrNoWinner    Error = "no winner available"
	ErrNoLegalMove Error = "search found no legal column"
)

// IsUsageFault reports whether err was caused by the caller (a move out of
// turn, a bad column or level) rather than by an internal fault.
func IsUsageFault(err error) bool {
	for _, target := range []error{
		ErrNotYourTurn, ErrGameOver, ErrInvalidColumn, ErrInvalidLevel,
		ErrOutOfBounds, ErrInvalidWeights, ErrColumnFull,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
