package patron

import (
	"context"
	"time"

	"github.com/xraph/patron/content"
	"github.com/xraph/patron/payment"
	"github.com/xraph/patron/stats"
	"github.com/xraph/patron/types"
)

// ──────────────────────────────────────────────────
// Stats
// ──────────────────────────────────────────────────

// CreatorStats aggregates engagement and revenue for one creator. Monthly
// earnings sum the net credits of purchases, tips and subscription charges
// from the trailing 30 days.
func (e *Engine) CreatorStats(ctx context.Context, creatorID uint64) (*stats.CreatorStats, error) {
	if _, err := e.store.GetCreator(ctx, creatorID); err != nil {
		return nil, err
	}

	result := &stats.CreatorStats{CreatorID: creatorID}

	items, err := e.store.ListContentByCreator(ctx, creatorID, content.ListOpts{})
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		result.TotalViews += item.Views
		result.TotalLikes += item.Likes
	}

	result.TipCount, err = e.store.CountTips(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	result.SubscriberCount, err = e.store.CountActiveSubscriptions(ctx, creatorID, time.Now())
	if err != nil {
		return nil, err
	}

	result.MonthlyEarnings, err = e.monthlyEarnings(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// PlatformStats returns the platform-wide rollup. Totals derive from the
// id sequences, so they count every allocation ever made.
func (e *Engine) PlatformStats(ctx context.Context) (*stats.PlatformStats, error) {
	state, err := e.platformState(ctx)
	if err != nil {
		return nil, err
	}

	return &stats.PlatformStats{
		TotalCreators:    state.NextCreatorID - 1,
		TotalContent:     state.NextContentID - 1,
		PlatformEarnings: state.Earnings,
		NextCreatorID:    state.NextCreatorID,
		NextContentID:    state.NextContentID,
		NextTipID:        state.NextTipID,
	}, nil
}

func (e *Engine) monthlyEarnings(ctx context.Context, creatorID uint64) (types.Money, error) {
	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	total := types.Zero(e.currency)

	purchases, err := e.store.ListPurchasesByCreator(ctx, creatorID, payment.ListOpts{})
	if err != nil {
		return total, err
	}
	for _, p := range purchases {
		if p.CreatedAt.After(cutoff) {
			total = total.Add(p.NetCredit)
		}
	}

	tips, err := e.store.ListTipsByCreator(ctx, creatorID, payment.ListOpts{})
	if err != nil {
		return total, err
	}
	for _, t := range tips {
		if t.CreatedAt.After(cutoff) {
			total = total.Add(t.NetCredit)
		}
	}

	charges, err := e.store.ListChargesByCreator(ctx, creatorID, payment.ListOpts{})
	if err != nil {
		return total, err
	}
	for _, c := range charges {
		if c.CreatedAt.After(cutoff) {
			total = total.Add(c.NetCredit)
		}
	}

	return total, nil
}
