package utils

import (
	"context"
	"time"
)

// DefaultDBTimeout caps every Postgres round trip. Checkout latency is
// cashier-visible, so a stuck query fails fast instead of holding the lane.
const DefaultDBTimeout = 3 * time.Second

// WithDBTimeout bounds a repository call with the database deadline.
func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}
