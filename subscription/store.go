package subscription

import (
	"context"
	"time"
)

type Store interface {
	// Put inserts or replaces the record keyed by (subscriber, creatorID).
	Put(ctx context.Context, s *Subscription) error
	Get(ctx context.Context, subscriber string, creatorID uint64) (*Subscription, error)
	ListByCreator(ctx context.Context, creatorID uint64, opts ListOpts) ([]*Subscription, error)
	CountActive(ctx context.Context, creatorID uint64, asOf time.Time) (int64, error)
	// ListLapsed returns active-status records whose window ended before asOf.
	ListLapsed(ctx context.Context, asOf time.Time, limit int) ([]*Subscription, error)
}
