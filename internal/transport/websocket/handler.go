package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/internal/service/game"
	"github.com/iamasit07/connect4-minimax/pkg/useragent"
	"go.uber.org/zap"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager *game.SessionManager
	MoveTimeout    time.Duration
	Upgrader       websocket.Upgrader
	log            *zap.SugaredLogger
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, allowedOrigins []string, moveTimeout time.Duration, log *zap.SugaredLogger) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		MoveTimeout:    moveTimeout,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log.Named("ws"),
	}
}

// HandleWebSocket upgrades the request and plays one game session over it.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warnf("Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn, useragent.Describe(c.Request.UserAgent()))
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn, device string) {
	session, err := h.SessionManager.CreateSession()
	if err != nil {
		h.log.Errorf("Failed to create session: %v", err)
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Failed to create game"})
		conn.Close()
		return
	}
	gameID := session.GameID
	h.ConnManager.AddConnection(gameID, conn)
	h.log.Infow("Connection opened", "game", gameID, "device", device)

	// cancelled on disconnect, which also stops a running search
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		h.SessionManager.RemoveSession(gameID)
		h.ConnManager.RemoveConnection(gameID)
		h.log.Infow("Connection closed", "game", gameID)
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	go h.keepAlive(ctx, gameID)

	h.sendState(session)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Infow("Disconnected unexpectedly", "game", gameID, "error", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.ConnManager.SendError(gameID, "Invalid message format")
			continue
		}
		h.processMessage(ctx, session, msg)
	}
}

func (h *Handler) keepAlive(ctx context.Context, gameID string) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := h.ConnManager.Ping(gameID); err != nil {
				return
			}
		}
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(ctx context.Context, session *game.GameSession, msg domain.ClientMessage) {
	switch msg.Type {
	case "new":
		if err := session.NewGame(); err != nil {
			h.sendFault(session.GameID, err)
			return
		}
		h.sendState(session)
		if msg.MachineFirst {
			h.startMachineMove(ctx, session)
		}

	case "move":
		next, err := session.Move(msg.Column)
		if err != nil {
			h.sendFault(session.GameID, err)
			return
		}
		h.sendState(session)
		if !next.IsGameOver() {
			h.startMachineMove(ctx, session)
		}

	case "machine":
		h.startMachineMove(ctx, session)

	case "level":
		level := msg.Level
		if msg.Difficulty != "" {
			var err error
			if level, err = game.LevelForDifficulty(msg.Difficulty); err != nil {
				h.sendFault(session.GameID, err)
				return
			}
		}
		if err := session.SetLevel(level); err != nil {
			h.sendFault(session.GameID, err)
			return
		}
		h.sendState(session)

	case "state":
		h.sendState(session)

	default:
		h.ConnManager.SendError(session.GameID, "Unknown message type")
	}
}

// startMachineMove lets the machine reply on a worker goroutine; the result
// is pushed to the client when the search finishes.
func (h *Handler) startMachineMove(ctx context.Context, session *game.GameSession) {
	gameID := session.GameID

	var cancel context.CancelFunc
	if h.MoveTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, h.MoveTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	h.ConnManager.SendMessage(gameID, domain.ServerMessage{Type: "thinking", GameID: gameID})

	err := session.StartMachineMove(ctx, func(_ *domain.Board, err error) {
		defer cancel()
		switch {
		case err == nil:
			h.sendState(session)
		case errors.Is(err, context.Canceled):
			// connection closed or a new game was started
		case errors.Is(err, context.DeadlineExceeded):
			h.log.Warnw("Machine move timed out", "game", gameID, "timeout", h.MoveTimeout)
			h.ConnManager.SendError(gameID, "Machine ran out of time")
		default:
			h.sendFault(gameID, err)
		}
	})
	if err != nil {
		cancel()
		h.sendFault(gameID, err)
	}
}

func (h *Handler) sendState(session *game.GameSession) {
	state := session.Snapshot()
	h.ConnManager.SendMessage(session.GameID, domain.ServerMessage{
		Type:   "state",
		GameID: session.GameID,
		State:  &state,
	})
}

// sendFault reports usage faults verbatim and hides internal ones.
func (h *Handler) sendFault(gameID string, err error) {
	if domain.IsUsageFault(err) || errors.Is(err, game.ErrSearchInProgress) {
		h.ConnManager.SendError(gameID, err.Error())
		return
	}
	h.log.Errorw("Internal error", "game", gameID, "error", err)
	h.ConnManager.SendError(gameID, "Internal error")
}
