package domain

// ClientMessage is what a websocket client sends.
type ClientMessage struct {
	Type         string `json:"type"`
	Column       int    `json:"column"`
	Level        int    `json:"level"`
	Difficulty   string `json:"difficulty,omitempty"`
	MachineFirst bool   `json:"machineFirst"`
}

type ServerMessage struct {
	Type    string     `json:"type"`
	Message string     `json:"message,omitempty"`
	GameID  string     `json:"gameId,omitempty"`
	State   *GameState `json:"state,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// GameState is the serialisable view of a board.
type GameState struct {
	Board      [][]int      `json:"board"`
	ToMove     string       `json:"toMove"`
	Level      int          `json:"level"`
	Tokens     int          `json:"tokens"`
	Evaluation int          `json:"evaluation"`
	GameOver   bool         `json:"gameOver"`
	Winner     string       `json:"winner,omitempty"`
	Witness    []Coordinate `json:"witness,omitempty"`
	LastColumn *int         `json:"lastColumn,omitempty"`
	Thinking   bool         `json:"thinking"`
}

func NewGameState(b *Board) GameState {
	cells := b.Cells()
	grid := make([][]int, Rows)
	for row := range grid {
		grid[row] = make([]int, Columns)
		for col := range grid[row] {
			grid[row][col] = int(cells[row][col])
		}
	}

	state := GameState{
		Board:      grid,
		ToMove:     b.ToMove().String(),
		Level:      b.Level(),
		Tokens:     b.Tokens(),
		Evaluation: b.Evaluation(),
		GameOver:   b.IsGameOver(),
	}
	if winner := b.Winner(); winner != Empty {
		state.Winner = winner.String()
		// a winner always has a witness
		state.Witness, _ = b.Witness()
	}
	return state
}
