package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/manusiele/therapyflow-sub000/src/config"
	"github.com/manusiele/therapyflow-sub000/src/repository"
)

// StartPresenceReaper runs a background loop that marks presence rows offline
// once their last heartbeat is older than the configured TTL. Without it an
// abandoned tab would hold its online row, and the gate, forever.
func StartPresenceReaper(ctx context.Context, cfg *config.GlobalConfig, presence repository.PresenceStore) {
	interval := cfg.ReaperInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ttl := cfg.PresenceTTL
	if ttl <= 0 {
		ttl = 90 * time.Second
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				slog.Info("Presence reaper stopped")
				return
			case <-ticker.C:
				tickCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
				expired, err := presence.ExpireStale(tickCtx, ttl)
				cancel()
				if err != nil {
					slog.Error("Presence reaper tick failed", "error", err)
					continue
				}
				if expired > 0 {
					slog.Info("Presence reaper expired stale rows", "count", expired)
				}
			}
		}
	}()
}
