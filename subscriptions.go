package patron

import (
	"context"
	"time"

	"github.com/xraph/patron/id"
	"github.com/xraph/patron/payment"
	"github.com/xraph/patron/subscription"
	"github.com/xraph/patron/types"
)

// ──────────────────────────────────────────────────
// Subscriptions
// ──────────────────────────────────────────────────

// Subscribe opens or extends the single subscription a subscriber holds
// per creator. The charge is tier rate times months and is fee-split like
// every transfer. Re-subscribing while a window is still active extends it
// from its current end and adopts the new tier; a lapsed record is
// restarted from now.
func (e *Engine) Subscribe(ctx context.Context, subscriber string, creatorID uint64, tier subscription.Tier, months int, autoRenew bool) (*subscription.Subscription, error) {
	if subscriber == "" {
		return nil, ErrInvalidInput
	}
	if !tier.Valid() {
		return nil, ErrInvalidTier
	}
	if months <= 0 {
		return nil, ErrInvalidInput
	}

	rate, ok := e.tierRates[tier]
	if !ok {
		return nil, ErrInvalidTier
	}
	amount := types.New(rate, e.currency).Multiply(int64(months))

	c, err := e.store.GetCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	net, fee, err := e.settle(ctx, subscriber, amount, c)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	duration := time.Duration(months) * e.period
	extended := false

	sub, err := e.store.GetSubscription(ctx, subscriber, creatorID)
	switch {
	case err == nil && sub.ActiveAt(now):
		sub.Tier = tier
		sub.EndDate = sub.EndDate.Add(duration)
		sub.AmountPaid = sub.AmountPaid.Add(amount)
		sub.AutoRenew = autoRenew
		sub.Status = subscription.StatusActive
		sub.Touch()
		extended = true
	case err == nil || IsNotFound(err):
		sub = &subscription.Subscription{
			Entity:     types.NewEntity(),
			Subscriber: subscriber,
			CreatorID:  creatorID,
			Tier:       tier,
			StartDate:  now,
			EndDate:    now.Add(duration),
			AmountPaid: amount,
			AutoRenew:  autoRenew,
			Status:     subscription.StatusActive,
		}
	default:
		return nil, err
	}

	if err := e.store.PutSubscription(ctx, sub); err != nil {
		return nil, err
	}

	charge := &payment.Charge{
		Entity:     types.NewEntity(),
		ID:         id.NewChargeID(),
		Subscriber: subscriber,
		CreatorID:  creatorID,
		Tier:       int(tier),
		Months:     months,
		Amount:     amount,
		NetCredit:  net,
		Fee:        fee,
	}
	if err := e.store.CreateCharge(ctx, charge); err != nil {
		return nil, err
	}

	e.logger.Info("subscription settled",
		"subscriber", subscriber,
		"creator_id", creatorID,
		"tier", tier.String(),
		"months", months,
		"extended", extended,
	)
	if extended {
		e.plugins.EmitSubscriptionExtended(ctx, sub)
	} else {
		e.plugins.EmitSubscriptionCreated(ctx, sub)
	}
	return sub, nil
}

// GetSubscription retrieves the subscription record for a subscriber and
// creator pair, active or not.
func (e *Engine) GetSubscription(ctx context.Context, subscriber string, creatorID uint64) (*subscription.Subscription, error) {
	return e.store.GetSubscription(ctx, subscriber, creatorID)
}

// IsSubscribed reports whether the subscriber's window covers now.
func (e *Engine) IsSubscribed(ctx context.Context, subscriber string, creatorID uint64) (bool, error) {
	sub, err := e.store.GetSubscription(ctx, subscriber, creatorID)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return sub.ActiveAt(time.Now()), nil
}

// SubscriptionTier returns the active tier for the pair. The boolean is
// false when there is no active subscription; callers must not read the
// tier in that case, since the zero tier is a real purchasable level.
func (e *Engine) SubscriptionTier(ctx context.Context, subscriber string, creatorID uint64) (subscription.Tier, bool, error) {
	sub, err := e.store.GetSubscription(ctx, subscriber, creatorID)
	if err != nil {
		if IsNotFound(err) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if !sub.ActiveAt(time.Now()) {
		return 0, false, nil
	}
	return sub.Tier, true, nil
}

// ListSubscribers lists subscription records for a creator.
func (e *Engine) ListSubscribers(ctx context.Context, creatorID uint64, opts subscription.ListOpts) ([]*subscription.Subscription, error) {
	return e.store.ListSubscriptionsByCreator(ctx, creatorID, opts)
}
