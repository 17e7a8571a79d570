package content

import "context"

type Store interface {
	Create(ctx context.Context, c *Content) error
	Get(ctx context.Context, contentID uint64) (*Content, error)
	Update(ctx context.Context, c *Content) error
	ListByCreator(ctx context.Context, creatorID uint64, opts ListOpts) ([]*Content, error)
}
