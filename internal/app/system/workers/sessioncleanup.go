// internal/app/system/workers/sessioncleanup.go
package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// InactiveCloser closes activity sessions idle past a threshold.
// *sessions.Store satisfies it.
type InactiveCloser interface {
	CloseInactive(ctx context.Context, threshold time.Duration) (int64, error)
}

// SessionCleanup closes activity sessions whose heartbeat has gone quiet
// for longer than the idle threshold.
type SessionCleanup struct {
	sessions  InactiveCloser
	threshold time.Duration
	*loop
}

// NewSessionCleanup builds the worker. interval is how often it checks;
// idle is how long a session may go without a heartbeat.
func NewSessionCleanup(sess InactiveCloser, logger *zap.Logger, interval, idle time.Duration) *SessionCleanup {
	w := &SessionCleanup{sessions: sess, threshold: idle}
	w.loop = newLoop("session cleanup", interval, 30*time.Second, logger, w.closeIdle)
	return w
}

func (w *SessionCleanup) Start() { w.start(zap.Duration("idle_threshold", w.threshold)) }

// Stop waits for an in-progress pass to finish.
func (w *SessionCleanup) Stop() { w.stop() }

func (w *SessionCleanup) closeIdle(ctx context.Context) {
	n, err := w.sessions.CloseInactive(ctx, w.threshold)
	if err != nil {
		w.log.Error("closing idle activity sessions", zap.Error(err))
		return
	}
	if n > 0 {
		w.log.Info("closed idle activity sessions", zap.Int64("count", n))
	}
}
