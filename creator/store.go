package creator

import "context"

type Store interface {
	Create(ctx context.Context, c *Creator) error
	Get(ctx context.Context, creatorID uint64) (*Creator, error)
	Update(ctx context.Context, c *Creator) error
}
