package cardsync

import (
	"context"
	"log/slog"
	"time"
)

// RunEvery runs the syncer immediately and then on every tick until ctx is
// cancelled. Failed runs are logged and retried on the next tick.
func RunEvery(ctx context.Context, s *Syncer, interval time.Duration) {
	slog.Info("card sync worker started", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.Run(ctx); err != nil {
			slog.Error("card sync failed", "error", err)
		}

		select {
		case <-ctx.Done():
			slog.Info("card sync worker stopped")
			return
		case <-ticker.C:
		}
	}
}
