package payment

import "context"

type Store interface {
	CreatePurchase(ctx context.Context, p *Purchase) error
	GetPurchase(ctx context.Context, buyer string, contentID uint64) (*Purchase, error)
	ListPurchasesByCreator(ctx context.Context, creatorID uint64, opts ListOpts) ([]*Purchase, error)

	CreateTip(ctx context.Context, t *Tip) error
	GetTip(ctx context.Context, tipID uint64) (*Tip, error)
	ListTipsByCreator(ctx context.Context, creatorID uint64, opts ListOpts) ([]*Tip, error)
	CountTips(ctx context.Context, creatorID uint64) (int64, error)

	CreateCharge(ctx context.Context, c *Charge) error
	ListChargesByCreator(ctx context.Context, creatorID uint64, opts ListOpts) ([]*Charge, error)

	CreatePayout(ctx context.Context, p *Payout) error
	ListPayouts(ctx context.Context, principal string, opts ListOpts) ([]*Payout, error)
}
