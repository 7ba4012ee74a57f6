package game

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"github.com/iamasit07/connect4-minimax/pkg/uid"
	"go.uber.org/zap"
)

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*GameSession // gameID → GameSession
	mu       sync.RWMutex
	opts     []domain.Option
	log      *zap.SugaredLogger
	now      func() time.Time
}

// NewSessionManager creates sessions whose boards are built with opts.
func NewSessionManager(log *zap.SugaredLogger, opts ...domain.Option) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*GameSession),
		opts:     opts,
		log:      log.Named("session"),
		now:      time.Now,
	}
}

func (sm *SessionManager) CreateSession() (*GameSession, error) {
	gameID, err := uid.GenerateSessionID()
	if err != nil {
		return nil, err
	}
	session, err := newGameSession(gameID, sm.opts, sm.log, sm.now)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	sm.sessions[gameID] = session
	sm.mu.Unlock()

	sm.log.Infow("Created session", "game", gameID, "level", session.level)
	return session, nil
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

// RemoveSession drops the session and cancels its search.
func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	session, exists := sm.sessions[gameID]
	delete(sm.sessions, gameID)
	sm.mu.Unlock()

	if !exists {
		return ErrSessionNotFound
	}
	session.CancelSearch()
	sm.log.Infow("Removed session", "game", gameID)
	return nil
}

// ListSessions returns summaries ordered by creation time.
func (sm *SessionManager) ListSessions() []Summary {
	sm.mu.RLock()
	sessions := make([]*GameSession, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	out := make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.Summary())
	}
	slices.SortFunc(out, func(a, b Summary) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.GameID, b.GameID)
	})
	return out
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CleanupIdleSessions removes sessions without activity for maxIdle or
// longer. Sessions with a running search are kept.
func (sm *SessionManager) CleanupIdleSessions(maxIdle time.Duration) int {
	now := sm.now()

	sm.mu.Lock()
	var stale []*GameSession
	for gameID, session := range sm.sessions {
		if session.Searching() || now.Sub(session.LastActivity()) < maxIdle {
			continue
		}
		delete(sm.sessions, gameID)
		stale = append(stale, session)
	}
	sm.mu.Unlock()

	for _, session := range stale {
		session.CancelSearch()
	}
	if len(stale) > 0 {
		sm.log.Infof("Memory cleanup: Removed %d idle game sessions", len(stale))
	}
	return len(stale)
}
