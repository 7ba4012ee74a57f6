package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"go.uber.org/zap"
)

func TestSessionManagerLifecycle(t *testing.T) {
	sm, clock := newTestManager(t, domain.WithLevel(2))

	first, err := sm.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	clock.Advance(time.Second)
	second, err := sm.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if first.GameID == second.GameID {
		t.Fatalf("sessions share id %s", first.GameID)
	}

	got, ok := sm.GetSessionByGameID(second.GameID)
	if !ok || got != second {
		t.Fatalf("GetSessionByGameID did not return the session")
	}

	list := sm.ListSessions()
	if len(list) != 2 || list[0].GameID != first.GameID || list[1].GameID != second.GameID {
		t.Fatalf("unexpected listing %+v", list)
	}
	if list[0].Level != 2 || list[0].ToMove != "none" || list[0].GameOver {
		t.Fatalf("unexpected summary %+v", list[0])
	}

	if err := sm.RemoveSession(first.GameID); err != nil {
		t.Fatalf("RemoveSession: %v", err)
	}
	if err := sm.RemoveSession(first.GameID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if sm.Count() != 1 {
		t.Fatalf("expected one session left, got %d", sm.Count())
	}
}

func TestSessionManagerRejectsBadOptions(t *testing.T) {
	sm := NewSessionManager(zap.NewNop().Sugar(), domain.WithLevel(0))
	if _, err := sm.CreateSession(); !errors.Is(err, domain.ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}
	if sm.Count() != 0 {
		t.Fatalf("failed session must not be registered")
	}
}

func TestCleanupIdleSessions(t *testing.T) {
	sm, clock := newTestManager(t, domain.WithLevel(1))

	idle, err := sm.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	active, err := sm.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	thinking, err := sm.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	clock.Advance(20 * time.Minute)
	if _, err := active.Move(3); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, _, _, err := thinking.beginSearch(context.Background()); err != nil {
		t.Fatalf("beginSearch: %v", err)
	}
	defer thinking.CancelSearch()

	clock.Advance(15 * time.Minute)
	if removed := sm.CleanupIdleSessions(30 * time.Minute); removed != 1 {
		t.Fatalf("expected one removed session, got %d", removed)
	}
	if _, ok := sm.GetSessionByGameID(idle.GameID); ok {
		t.Fatalf("idle session survived cleanup")
	}
	if _, ok := sm.GetSessionByGameID(active.GameID); !ok {
		t.Fatalf("active session was removed")
	}
	if _, ok := sm.GetSessionByGameID(thinking.GameID); !ok {
		t.Fatalf("session with a running search was removed")
	}
}
