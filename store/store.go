package store

import (
	"context"
	"time"

	"github.com/xraph/patron/content"
	"github.com/xraph/patron/creator"
	"github.com/xraph/patron/payment"
	"github.com/xraph/patron/platform"
	"github.com/xraph/patron/subscription"
)

// Store is the unified storage interface for all Patron entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
type Store interface {
	// Creator methods
	CreateCreator(ctx context.Context, c *creator.Creator) error
	GetCreator(ctx context.Context, creatorID uint64) (*creator.Creator, error)
	UpdateCreator(ctx context.Context, c *creator.Creator) error

	// Content methods
	CreateContent(ctx context.Context, c *content.Content) error
	GetContent(ctx context.Context, contentID uint64) (*content.Content, error)
	UpdateContent(ctx context.Context, c *content.Content) error
	ListContentByCreator(ctx context.Context, creatorID uint64, opts content.ListOpts) ([]*content.Content, error)

	// Subscription methods
	PutSubscription(ctx context.Context, s *subscription.Subscription) error
	GetSubscription(ctx context.Context, subscriber string, creatorID uint64) (*subscription.Subscription, error)
	ListSubscriptionsByCreator(ctx context.Context, creatorID uint64, opts subscription.ListOpts) ([]*subscription.Subscription, error)
	CountActiveSubscriptions(ctx context.Context, creatorID uint64, asOf time.Time) (int64, error)
	ListLapsedSubscriptions(ctx context.Context, asOf time.Time, limit int) ([]*subscription.Subscription, error)

	// Payment methods
	CreatePurchase(ctx context.Context, p *payment.Purchase) error
	GetPurchase(ctx context.Context, buyer string, contentID uint64) (*payment.Purchase, error)
	ListPurchasesByCreator(ctx context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Purchase, error)
	CreateTip(ctx context.Context, t *payment.Tip) error
	GetTip(ctx context.Context, tipID uint64) (*payment.Tip, error)
	ListTipsByCreator(ctx context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Tip, error)
	CountTips(ctx context.Context, creatorID uint64) (int64, error)
	CreateCharge(ctx context.Context, c *payment.Charge) error
	ListChargesByCreator(ctx context.Context, creatorID uint64, opts payment.ListOpts) ([]*payment.Charge, error)
	CreatePayout(ctx context.Context, p *payment.Payout) error
	ListPayouts(ctx context.Context, principal string, opts payment.ListOpts) ([]*payment.Payout, error)

	// Platform ledger methods
	GetPlatform(ctx context.Context) (*platform.State, error)
	UpdatePlatform(ctx context.Context, s *platform.State) error
	NextID(ctx context.Context, seq platform.Sequence) (uint64, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
