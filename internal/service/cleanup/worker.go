package cleanup

import (
	"context"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/service/game"
	"go.uber.org/zap"
)

type Worker struct {
	SessionManager *game.SessionManager
	Interval       time.Duration
	MaxIdle        time.Duration
	log            *zap.SugaredLogger
}

func NewWorker(sm *game.SessionManager, interval, maxIdle time.Duration, log *zap.SugaredLogger) *Worker {
	return &Worker{
		SessionManager: sm,
		Interval:       interval,
		MaxIdle:        maxIdle,
		log:            log.Named("cleanup"),
	}
}

// Start runs the cleanup every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				w.log.Info("Background worker stopped")
				return
			case <-ticker.C:
				w.runCleanup()
			}
		}
	}()
	w.log.Infow("Background worker started", "interval", w.Interval, "maxIdle", w.MaxIdle)
}

func (w *Worker) runCleanup() int {
	removed := w.SessionManager.CleanupIdleSessions(w.MaxIdle)
	if removed > 0 {
		w.log.Infof("Removed %d idle sessions, %d left", removed, w.SessionManager.Count())
	}
	return removed
}
