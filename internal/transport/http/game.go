package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
	"go.uber.org/zap"
)

type GameHandler struct {
	SessionManager *game.SessionManager
	BoardOptions   []domain.Option
	AnalyzeTimeout time.Duration
	log            *zap.SugaredLogger
}

func NewGameHandler(sm *game.SessionManager, opts []domain.Option, analyzeTimeout time.Duration, log *zap.SugaredLogger) *GameHandler {
	return &GameHandler{
		SessionManager: sm,
		BoardOptions:   opts,
		AnalyzeTimeout: analyzeTimeout,
		log:            log.Named("http"),
	}
}

type analyzeRequest struct {
	Moves        []int  `json:"moves"`
	Level        int    `json:"level"`
	Difficulty   string `json:"difficulty"`
	MachineFirst bool   `json:"machineFirst"`
}

type analyzeResponse struct {
	Analysis domain.Analysis  `json:"analysis"`
	State    domain.GameState `json:"state"`
}

func (h *GameHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListGames returns the live sessions.
func (h *GameHandler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, h.SessionManager.ListSessions())
}

// Analyze replays the posted moves and returns the machine's view of the
// resulting position without playing it.
func (h *GameHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	level := req.Level
	if req.Difficulty != "" {
		var err error
		if level, err = game.LevelForDifficulty(req.Difficulty); err != nil {
			h.writeError(c, err)
			return
		}
	}
	opts := append([]domain.Option(nil), h.BoardOptions...)
	if level != 0 {
		opts = append(opts, domain.WithLevel(level))
	}
	board, err := domain.Replay(req.MachineFirst, req.Moves, opts...)
	if err != nil {
		h.writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	if h.AnalyzeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.AnalyzeTimeout)
		defer cancel()
	}

	analysis, err := board.Analyze(ctx)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analyzeResponse{Analysis: analysis, State: domain.NewGameState(board)})
}

func (h *GameHandler) writeError(c *gin.Context, err error) {
	switch {
	case domain.IsUsageFault(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Analysis timed out"})
	case errors.Is(err, context.Canceled):
		// client went away
		c.Status(http.StatusRequestTimeout)
	default:
		h.log.Errorf("Analyze failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
