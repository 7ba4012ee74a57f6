package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"go.uber.org/zap"
)

const (
	ErrSearchInProgress domain.Error = "machine is still thinking"
	ErrSessionNotFound  domain.Error = "session not found"
)

// GameSession is one human playing the machine. The board itself is
// immutable; the session only swaps the current board under its lock.
type GameSession struct {
	GameID    string
	CreatedAt time.Time

	mu         sync.Mutex
	board      *domain.Board
	opts       []domain.Option
	level      int
	lastColumn int
	lastActive time.Time
	search     *search
	log        *zap.SugaredLogger
	now        func() time.Time
}

// search is the machine move currently running for a session.
type search struct {
	cancel context.CancelFunc
}

// Summary is the listing view of a session.
type Summary struct {
	GameID       string    `json:"gameId"`
	Level        int       `json:"level"`
	Tokens       int       `json:"tokens"`
	ToMove       string    `json:"toMove"`
	GameOver     bool      `json:"gameOver"`
	Thinking     bool      `json:"thinking"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
}

func newGameSession(gameID string, opts []domain.Option, log *zap.SugaredLogger, now func() time.Time) (*GameSession, error) {
	board, err := domain.NewBoard(opts...)
	if err != nil {
		return nil, err
	}
	created := now()
	return &GameSession{
		GameID:     gameID,
		CreatedAt:  created,
		board:      board,
		opts:       opts,
		level:      board.Level(),
		lastColumn: -1,
		lastActive: created,
		log:        log.With("game", gameID),
		now:        now,
	}, nil
}

func (gs *GameSession) Board() *domain.Board {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.board
}

// Snapshot returns the current board as sent to clients.
func (gs *GameSession) Snapshot() domain.GameState {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	state := domain.NewGameState(gs.board)
	if gs.lastColumn >= 0 {
		col := gs.lastColumn
		state.LastColumn = &col
	}
	state.Thinking = gs.search != nil
	return state
}

func (gs *GameSession) Summary() Summary {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return Summary{
		GameID:       gs.GameID,
		Level:        gs.board.Level(),
		Tokens:       gs.board.Tokens(),
		ToMove:       gs.board.ToMove().String(),
		GameOver:     gs.board.IsGameOver(),
		Thinking:     gs.search != nil,
		CreatedAt:    gs.CreatedAt,
		LastActivity: gs.lastActive,
	}
}

func (gs *GameSession) LastActivity() time.Time {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.lastActive
}

func (gs *GameSession) Searching() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.search != nil
}

// Move plays col for the human. A full column is reported as ErrColumnFull.
func (gs *GameSession) Move(col int) (*domain.Board, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.search != nil {
		return nil, ErrSearchInProgress
	}
	next, ok, err := gs.board.Move(col)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrColumnFull, col)
	}
	gs.commitLocked(next, col)
	return next, nil
}

// MachineMove runs the search on the calling goroutine.
func (gs *GameSession) MachineMove(ctx context.Context) (*domain.Board, error) {
	s, sctx, board, err := gs.beginSearch(ctx)
	if err != nil {
		return nil, err
	}
	next, _, err := board.MachineMove(sctx)
	return gs.finishSearch(s, board, next, err)
}

// StartMachineMove runs the search on a worker goroutine and hands the
// outcome to onDone. Only one search runs per session at a time.
func (gs *GameSession) StartMachineMove(ctx context.Context, onDone func(*domain.Board, error)) error {
	s, sctx, board, err := gs.beginSearch(ctx)
	if err != nil {
		return err
	}

	go func() {
		next, _, err := board.MachineMove(sctx)
		next, err = gs.finishSearch(s, board, next, err)
		if onDone != nil {
			onDone(next, err)
		}
	}()
	return nil
}

// CancelSearch stops the running search, if any. Its result is discarded.
func (gs *GameSession) CancelSearch() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.cancelSearchLocked()
}

func (gs *GameSession) SetLevel(level int) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.search != nil {
		return ErrSearchInProgress
	}
	next, err := gs.board.SetLevel(level)
	if err != nil {
		return err
	}
	gs.board = next
	gs.level = level
	gs.lastActive = gs.now()
	return nil
}

// NewGame abandons the current game, keeping the level.
func (gs *GameSession) NewGame() error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.cancelSearchLocked()
	opts := append(append([]domain.Option(nil), gs.opts...), domain.WithLevel(gs.level))
	board, err := domain.NewBoard(opts...)
	if err != nil {
		return err
	}
	gs.board = board
	gs.lastColumn = -1
	gs.lastActive = gs.now()
	gs.log.Debugw("New game", "level", gs.level)
	return nil
}

func (gs *GameSession) beginSearch(ctx context.Context) (*search, context.Context, *domain.Board, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.search != nil {
		return nil, nil, nil, ErrSearchInProgress
	}
	sctx, cancel := context.WithCancel(ctx)
	gs.search = &search{cancel: cancel}
	gs.lastActive = gs.now()
	return gs.search, sctx, gs.board, nil
}

// finishSearch commits next unless the search was cancelled or superseded
// by a new game in the meantime.
func (gs *GameSession) finishSearch(s *search, from, next *domain.Board, err error) (*domain.Board, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	s.cancel()
	if gs.search != s {
		return nil, context.Canceled
	}
	gs.search = nil
	if err != nil {
		return nil, err
	}

	col := playedColumn(from, next)
	gs.commitLocked(next, col)
	gs.log.Debugw("Machine moved", "column", col, "evaluation", next.Evaluation())
	return next, nil
}

func (gs *GameSession) cancelSearchLocked() {
	if gs.search == nil {
		return
	}
	gs.search.cancel()
	gs.search = nil
}

func (gs *GameSession) commitLocked(next *domain.Board, col int) {
	gs.board = next
	gs.lastColumn = col
	gs.lastActive = gs.now()
}

// playedColumn finds the single column in which next has one more token.
func playedColumn(prev, next *domain.Board) int {
	before, after := prev.Cells(), next.Cells()
	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			if before[row][col] != after[row][col] {
				return col
			}
		}
	}
	return -1
}
