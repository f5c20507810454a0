package worker

import (
	"context"
	"time"

	"neuronex/internal/auth"
	"neuronex/internal/logger"

	"go.uber.org/zap"
)

// SessionCleaner периодически выметает просроченные сессии из хранилища.
// Без него память потихоньку растёт от брошенных сессий.
type SessionCleaner struct {
	sessions *auth.SessionManager
	interval time.Duration
}

func NewSessionCleaner(sessions *auth.SessionManager, interval time.Duration) *SessionCleaner {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SessionCleaner{
		sessions: sessions,
		interval: interval,
	}
}

func (w *SessionCleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logger.Info("Worker: Фоновая очистка сессий", zap.Time("started_at", time.Now()))
			purged := w.sessions.PurgeExpired()
			logger.Info("Worker: Очистка завершена",
				zap.Int("purged", purged),
				zap.Int("alive", w.sessions.Len()))
		case <-ctx.Done():
			logger.Info("Worker: Фоновая очистка останавливается")
			return
		}
	}
}
