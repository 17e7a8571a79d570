package patron

import (
	"context"

	"github.com/xraph/patron/creator"
	"github.com/xraph/patron/id"
	"github.com/xraph/patron/payment"
	"github.com/xraph/patron/platform"
	"github.com/xraph/patron/types"
)

// ──────────────────────────────────────────────────
// Creator Management
// ──────────────────────────────────────────────────

// RegisterCreator registers a new creator profile owned by the given
// principal and returns its id. Ids are allocated monotonically starting
// at 1.
func (e *Engine) RegisterCreator(ctx context.Context, owner, name, bio, avatarURL string) (uint64, error) {
	if owner == "" || name == "" {
		return 0, ErrInvalidInput
	}

	creatorID, err := e.store.NextID(ctx, platform.SeqCreator)
	if err != nil {
		return 0, err
	}

	c := &creator.Creator{
		Entity:        types.NewEntity(),
		ID:            creatorID,
		Owner:         owner,
		Name:          name,
		Bio:           bio,
		AvatarURL:     avatarURL,
		TotalEarnings: types.Zero(e.currency),
		Tier:          creator.TierBasic,
	}

	if err := e.store.CreateCreator(ctx, c); err != nil {
		return 0, err
	}

	e.logger.Info("creator registered",
		"creator_id", creatorID,
		"owner", owner,
	)
	e.plugins.EmitCreatorRegistered(ctx, c)
	return creatorID, nil
}

// GetCreator retrieves a creator by id.
func (e *Engine) GetCreator(ctx context.Context, creatorID uint64) (*creator.Creator, error) {
	return e.store.GetCreator(ctx, creatorID)
}

// UpdateCreatorProfile replaces the mutable profile fields. Only the
// profile owner may call it; name stays required.
func (e *Engine) UpdateCreatorProfile(ctx context.Context, caller string, creatorID uint64, name, bio, avatarURL string) error {
	c, err := e.store.GetCreator(ctx, creatorID)
	if err != nil {
		return err
	}
	if c.Owner != caller {
		return ErrNotAuthorized
	}
	if name == "" {
		return ErrInvalidInput
	}

	c.Name = name
	c.Bio = bio
	c.AvatarURL = avatarURL
	c.Touch()

	return e.store.UpdateCreator(ctx, c)
}

// FollowCreator increments the creator's follower counter.
func (e *Engine) FollowCreator(ctx context.Context, caller string, creatorID uint64) error {
	if caller == "" {
		return ErrInvalidInput
	}

	c, err := e.store.GetCreator(ctx, creatorID)
	if err != nil {
		return err
	}

	c.Followers++
	c.Touch()
	return e.store.UpdateCreator(ctx, c)
}

// VerifyCreator marks a creator verified. Admin only.
func (e *Engine) VerifyCreator(ctx context.Context, caller string, creatorID uint64) error {
	if !e.isAdmin(caller) {
		return ErrNotAuthorized
	}

	c, err := e.store.GetCreator(ctx, creatorID)
	if err != nil {
		return err
	}

	c.Verified = true
	c.Touch()
	if err := e.store.UpdateCreator(ctx, c); err != nil {
		return err
	}

	e.logger.Info("creator verified", "creator_id", creatorID)
	e.plugins.EmitCreatorVerified(ctx, c)
	return nil
}

// SetCreatorTier assigns the platform standing level. Admin only.
func (e *Engine) SetCreatorTier(ctx context.Context, caller string, creatorID uint64, tier creator.Tier) error {
	if !e.isAdmin(caller) {
		return ErrNotAuthorized
	}
	if !tier.Valid() {
		return ErrInvalidTier
	}

	c, err := e.store.GetCreator(ctx, creatorID)
	if err != nil {
		return err
	}

	c.Tier = tier
	c.Touch()
	return e.store.UpdateCreator(ctx, c)
}

// WithdrawEarnings moves part of a creator's accrued earnings to the
// owner's wallet and writes a payout receipt. Owner only.
func (e *Engine) WithdrawEarnings(ctx context.Context, caller string, creatorID uint64, amount types.Money) error {
	c, err := e.store.GetCreator(ctx, creatorID)
	if err != nil {
		return err
	}
	if c.Owner != caller {
		return ErrNotAuthorized
	}
	if amount.Currency != e.currency || !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(c.TotalEarnings) {
		return ErrInsufficientBalance
	}

	c.TotalEarnings = c.TotalEarnings.Subtract(amount)
	c.Touch()
	if err := e.store.UpdateCreator(ctx, c); err != nil {
		return err
	}

	if err := e.wallet.Credit(ctx, caller, amount); err != nil {
		// Restore the balance so the ledger and wallet stay consistent.
		c.TotalEarnings = c.TotalEarnings.Add(amount)
		c.Touch()
		if rerr := e.store.UpdateCreator(ctx, c); rerr != nil {
			e.logger.Error("failed to restore earnings after credit failure",
				"creator_id", creatorID,
				"error", rerr,
			)
		}
		return err
	}

	payout := &payment.Payout{
		Entity:    types.NewEntity(),
		ID:        id.NewPayoutID(),
		Kind:      payment.PayoutCreator,
		Principal: caller,
		CreatorID: creatorID,
		Amount:    amount,
	}
	if err := e.store.CreatePayout(ctx, payout); err != nil {
		return err
	}

	e.logger.Info("earnings withdrawn",
		"creator_id", creatorID,
		"amount", amount.String(),
	)
	e.plugins.EmitEarningsWithdrawn(ctx, payout)
	return nil
}

func (e *Engine) isAdmin(caller string) bool {
	return e.admin != "" && caller == e.admin
}
