package creator

import (
	"github.com/xraph/patron/types"
)

// Tier is the creator standing level assigned by the platform admin.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Valid reports whether t is a known creator tier.
func (t Tier) Valid() bool {
	switch t {
	case TierBasic, TierGold, TierPlatinum:
		return true
	}
	return false
}

// Creator is a registered content producer with an earnings balance.
// Owner is immutable after registration; TotalEarnings only moves through
// fee-split transfers and withdrawals.
type Creator struct {
	types.Entity
	ID            uint64      `json:"id"`
	Owner         string      `json:"owner"`
	Name          string      `json:"name"`
	Bio           string      `json:"bio"`
	AvatarURL     string      `json:"avatar_url"`
	Followers     uint64      `json:"followers"`
	TotalEarnings types.Money `json:"total_earnings"`
	ContentCount  uint64      `json:"content_count"`
	Verified      bool        `json:"verified"`
	Tier          Tier        `json:"tier"`
}
