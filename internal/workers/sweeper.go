package workers

import (
	"context"
	"fmt"
	"time"

	"outreach-server/internal/observability"
)

// TokenPurger is satisfied by *store.Store
type TokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

// Sweeper periodically drops revocation rows for tokens that have expired
type Sweeper struct {
	purger   TokenPurger
	interval time.Duration
	logger   *observability.Logger
}

func NewSweeper(purger TokenPurger, interval time.Duration, logger *observability.Logger) *Sweeper {
	return &Sweeper{purger: purger, interval: interval, logger: logger}
}

// Run sweeps once immediately, then on every tick until ctx is done
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	purged, err := s.purger.PurgeExpiredTokens(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to sweep expired tokens", err)
		return
	}
	if purged > 0 {
		s.logger.Info(ctx, fmt.Sprintf("purged %d expired token revocations", purged))
	}
}
