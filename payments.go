package patron

import (
	"context"

	"github.com/xraph/patron/content"
	"github.com/xraph/patron/creator"
	"github.com/xraph/patron/id"
	"github.com/xraph/patron/payment"
	"github.com/xraph/patron/platform"
	"github.com/xraph/patron/types"
)

// ──────────────────────────────────────────────────
// Payments
// ──────────────────────────────────────────────────

// PurchaseContent buys lifetime access to a published content item. The
// buyer's wallet is debited for the full price, the creator is credited
// net of the platform fee, and an immutable receipt is written. Buying the
// same content twice fails without moving funds.
func (e *Engine) PurchaseContent(ctx context.Context, buyer string, contentID uint64) (*payment.Purchase, error) {
	if buyer == "" {
		return nil, ErrInvalidInput
	}

	item, err := e.store.GetContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if item.Status != content.StatusPublished {
		return nil, ErrContentNotFound
	}

	c, err := e.store.GetCreator(ctx, item.CreatorID)
	if err != nil {
		return nil, err
	}

	if _, err := e.store.GetPurchase(ctx, buyer, contentID); err == nil {
		return nil, ErrAlreadyPurchased
	} else if !IsNotFound(err) {
		return nil, err
	}

	net, fee, err := e.settle(ctx, buyer, item.Price, c)
	if err != nil {
		return nil, err
	}

	item.Earnings = item.Earnings.Add(net)
	item.Touch()
	if err := e.store.UpdateContent(ctx, item); err != nil {
		return nil, err
	}

	receipt := &payment.Purchase{
		Entity:    types.NewEntity(),
		ID:        id.NewPurchaseID(),
		Buyer:     buyer,
		ContentID: contentID,
		CreatorID: item.CreatorID,
		Price:     item.Price,
		NetCredit: net,
		Fee:       fee,
	}
	if err := e.store.CreatePurchase(ctx, receipt); err != nil {
		return nil, err
	}

	e.logger.Info("content purchased",
		"content_id", contentID,
		"buyer", buyer,
		"price", item.Price.String(),
		"fee", fee.String(),
	)
	e.plugins.EmitContentPurchased(ctx, receipt)
	return receipt, nil
}

// HasPurchased reports whether buyer holds a receipt for the content.
func (e *Engine) HasPurchased(ctx context.Context, buyer string, contentID uint64) (bool, error) {
	_, err := e.store.GetPurchase(ctx, buyer, contentID)
	if err == nil {
		return true, nil
	}
	if IsNotFound(err) {
		return false, nil
	}
	return false, err
}

// TipCreator sends a one-shot gratuity. The amount must be positive; it is
// fee-split like every other transfer.
func (e *Engine) TipCreator(ctx context.Context, tipper string, creatorID uint64, amount types.Money, message string) (uint64, error) {
	if tipper == "" {
		return 0, ErrInvalidInput
	}
	if amount.Currency != e.currency {
		return 0, ErrInvalidInput
	}
	if !amount.IsPositive() {
		return 0, ErrInvalidAmount
	}

	c, err := e.store.GetCreator(ctx, creatorID)
	if err != nil {
		return 0, err
	}

	net, fee, err := e.settle(ctx, tipper, amount, c)
	if err != nil {
		return 0, err
	}

	tipID, err := e.store.NextID(ctx, platform.SeqTip)
	if err != nil {
		return 0, err
	}

	tip := &payment.Tip{
		Entity:    types.NewEntity(),
		ID:        tipID,
		CreatorID: creatorID,
		Tipper:    tipper,
		Amount:    amount,
		NetCredit: net,
		Fee:       fee,
		Message:   message,
	}
	if err := e.store.CreateTip(ctx, tip); err != nil {
		return 0, err
	}

	e.logger.Info("tip sent",
		"tip_id", tipID,
		"creator_id", creatorID,
		"amount", amount.String(),
	)
	e.plugins.EmitTipSent(ctx, tip)
	return tipID, nil
}

// GetTip retrieves a tip by id.
func (e *Engine) GetTip(ctx context.Context, tipID uint64) (*payment.Tip, error) {
	return e.store.GetTip(ctx, tipID)
}

// Payouts lists the withdrawal receipts released to a principal.
func (e *Engine) Payouts(ctx context.Context, principal string, opts payment.ListOpts) ([]*payment.Payout, error) {
	return e.store.ListPayouts(ctx, principal, opts)
}

// WithdrawPlatformFees drains the accrued platform fees to the admin
// wallet and returns the amount released. Admin only; a zero balance is a
// no-op.
func (e *Engine) WithdrawPlatformFees(ctx context.Context, caller string) (types.Money, error) {
	if !e.isAdmin(caller) {
		return types.Zero(e.currency), ErrNotAuthorized
	}

	state, err := e.platformState(ctx)
	if err != nil {
		return types.Zero(e.currency), err
	}

	amount := state.Earnings
	if !amount.IsPositive() {
		return types.Zero(e.currency), nil
	}

	state.Earnings = types.Zero(e.currency)
	state.Touch()
	if err := e.store.UpdatePlatform(ctx, state); err != nil {
		return types.Zero(e.currency), err
	}

	if err := e.wallet.Credit(ctx, caller, amount); err != nil {
		state.Earnings = amount
		state.Touch()
		if rerr := e.store.UpdatePlatform(ctx, state); rerr != nil {
			e.logger.Error("failed to restore platform earnings after credit failure",
				"error", rerr,
			)
		}
		return types.Zero(e.currency), err
	}

	payout := &payment.Payout{
		Entity:    types.NewEntity(),
		ID:        id.NewPayoutID(),
		Kind:      payment.PayoutPlatform,
		Principal: caller,
		Amount:    amount,
	}
	if err := e.store.CreatePayout(ctx, payout); err != nil {
		return amount, err
	}

	e.logger.Info("platform fees withdrawn", "amount", amount.String())
	e.plugins.EmitPlatformFeesWithdrawn(ctx, payout)
	return amount, nil
}

// settle debits the payer's wallet for amount, splits it into the
// creator's net credit and the platform fee, and applies both sides of the
// split. The debit happens before any record mutation, so a failed debit
// leaves the ledger untouched; net + fee always equals amount.
func (e *Engine) settle(ctx context.Context, payer string, amount types.Money, c *creator.Creator) (net, fee types.Money, err error) {
	if err := e.wallet.Debit(ctx, payer, amount); err != nil {
		return types.Zero(e.currency), types.Zero(e.currency), err
	}

	net, fee = amount.Split(e.feeRatePercent)

	c.TotalEarnings = c.TotalEarnings.Add(net)
	c.Touch()
	if err := e.store.UpdateCreator(ctx, c); err != nil {
		return net, fee, err
	}

	state, err := e.platformState(ctx)
	if err != nil {
		return net, fee, err
	}
	state.Earnings = state.Earnings.Add(fee)
	state.Touch()
	if err := e.store.UpdatePlatform(ctx, state); err != nil {
		return net, fee, err
	}

	return net, fee, nil
}
