// Package platform holds the singleton platform ledger: accrued fees and
// the monotonic id sequences for creators, content and tips.
package platform

import (
	"github.com/xraph/patron/types"
)

// State is the platform ledger singleton. Earnings accrues the platform
// fee from every transfer and is drained only by the admin principal.
// The Next* sequences hold the id that the next allocation will return;
// a fresh ledger starts every sequence at 1.
type State struct {
	types.Entity
	Earnings      types.Money `json:"earnings"`
	NextCreatorID uint64      `json:"next_creator_id"`
	NextContentID uint64      `json:"next_content_id"`
	NextTipID     uint64      `json:"next_tip_id"`
}

// NewState returns a fresh platform ledger with sequences starting at 1.
func NewState(currency string) *State {
	return &State{
		Entity:        types.NewEntity(),
		Earnings:      types.Zero(currency),
		NextCreatorID: 1,
		NextContentID: 1,
		NextTipID:     1,
	}
}
