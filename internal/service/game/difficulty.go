package game

import (
	"fmt"
	"strings"

	"github.com/iamasit07/connect4-minimax/internal/domain"
)

// named difficulties offered by the front ends
var difficultyLevels = map[string]int{
	"easy":   1,
	"medium": 3,
	"hard":   domain.MaxLevel,
}

// LevelForDifficulty maps easy, medium or hard to a search level.
func LevelForDifficulty(difficulty string) (int, error) {
	level, ok := difficultyLevels[strings.ToLower(strings.TrimSpace(difficulty))]
	if !ok {
		return 0, fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidLevel, difficulty)
	}
	return level, nil
}
