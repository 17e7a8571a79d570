// Package payment defines the immutable monetary records Patron writes:
// purchase receipts, tips and payout receipts.
package payment

import (
	"github.com/xraph/patron/id"
	"github.com/xraph/patron/types"
)

// Purchase is the lifetime-access receipt keyed by (Buyer, ContentID).
// Immutable once created; its existence alone grants access, regardless of
// later price or publication changes.
type Purchase struct {
	types.Entity
	ID        id.PurchaseID `json:"id"`
	Buyer     string        `json:"buyer"`
	ContentID uint64        `json:"content_id"`
	CreatorID uint64        `json:"creator_id"`
	Price     types.Money   `json:"price"`
	NetCredit types.Money   `json:"net_credit"`
	Fee       types.Money   `json:"fee"`
}

// Tip is a one-shot gratuity to a creator. IDs are numeric and allocated
// monotonically by the platform ledger.
type Tip struct {
	types.Entity
	ID        uint64      `json:"id"`
	CreatorID uint64      `json:"creator_id"`
	Tipper    string      `json:"tipper"`
	Amount    types.Money `json:"amount"`
	NetCredit types.Money `json:"net_credit"`
	Fee       types.Money `json:"fee"`
	Message   string      `json:"message"`
}

// Charge records one subscription payment: the initial subscribe and every
// later extension each write one. Stats derive recent subscription revenue
// from these rather than from the mutable subscription window.
type Charge struct {
	types.Entity
	ID         id.ChargeID `json:"id"`
	Subscriber string      `json:"subscriber"`
	CreatorID  uint64      `json:"creator_id"`
	Tier       int         `json:"tier"`
	Months     int         `json:"months"`
	Amount     types.Money `json:"amount"`
	NetCredit  types.Money `json:"net_credit"`
	Fee        types.Money `json:"fee"`
}

// PayoutKind distinguishes creator earnings withdrawals from platform fee
// withdrawals.
type PayoutKind string

const (
	PayoutCreator  PayoutKind = "creator"
	PayoutPlatform PayoutKind = "platform"
)

// Payout records a withdrawal released to the external wallet substrate.
type Payout struct {
	types.Entity
	ID        id.PayoutID `json:"id"`
	Kind      PayoutKind  `json:"kind"`
	Principal string      `json:"principal"`
	CreatorID uint64      `json:"creator_id,omitempty"` // zero for platform payouts
	Amount    types.Money `json:"amount"`
}

// ListOpts filters payment record listings.
type ListOpts struct {
	Limit  int
	Offset int
}
