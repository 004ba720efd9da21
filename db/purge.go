package db

import (
	"context"
	"fmt"
	"time"

	"github.com/extremtechniker/gokey/logger"
)

// DefaultPurgeInterval is used when RunPurger gets a non-positive interval.
const DefaultPurgeInterval = 10 * time.Minute

// PurgeExpired deletes expired sessions and returns how many were removed.
func (s *PgStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, "DELETE FROM sessions WHERE expires_at <= now()")
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RunPurger calls PurgeExpired every interval until ctx is done.
func (s *PgStore) RunPurger(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultPurgeInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				logger.Logger.Errorf("failed to purge sessions: %v", err)
				continue
			}
			if n > 0 {
				logger.Logger.Debugf("purged %d expired sessions", n)
			}
		}
	}
}
