package subscription

import (
	"time"

	"github.com/xraph/patron/types"
)

// Tier is an ordinal subscription level. The zero tier is a real,
// purchasable level; "no subscription" is expressed by the absence of a
// record, never by a tier value.
type Tier int

const (
	TierBasic   Tier = 0
	TierPremium Tier = 1
	TierVIP     Tier = 2
)

// Valid reports whether t is a purchasable tier.
func (t Tier) Valid() bool {
	return t >= TierBasic && t <= TierVIP
}

func (t Tier) String() string {
	switch t {
	case TierBasic:
		return "basic"
	case TierPremium:
		return "premium"
	case TierVIP:
		return "vip"
	default:
		return "invalid"
	}
}

// Status tracks the lifecycle of a subscription record. Activity checks
// always compare EndDate directly; the expired status exists so the expiry
// sweeper can emit lifecycle events exactly once.
type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

// Subscription is the single record a subscriber holds per creator.
// A repeat subscribe extends the window from its current end.
type Subscription struct {
	types.Entity
	Subscriber string      `json:"subscriber"`
	CreatorID  uint64      `json:"creator_id"`
	Tier       Tier        `json:"tier"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    time.Time   `json:"end_date"`
	AmountPaid types.Money `json:"amount_paid"`
	AutoRenew  bool        `json:"auto_renew"`
	Status     Status      `json:"status"`
}

// ActiveAt reports whether the subscription window covers t.
func (s *Subscription) ActiveAt(t time.Time) bool {
	return !t.Before(s.StartDate) && !t.After(s.EndDate)
}

// ListOpts filters subscription listings.
type ListOpts struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}
