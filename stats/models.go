// Package stats defines the read-only rollups derived from ledger records.
package stats

import (
	"github.com/xraph/patron/types"
)

// CreatorStats aggregates engagement and revenue for one creator.
// MonthlyEarnings sums net-of-fee credits (purchases, tips, subscriptions)
// from the trailing 30 days.
type CreatorStats struct {
	CreatorID       uint64      `json:"creator_id"`
	TotalViews      uint64      `json:"total_views"`
	TotalLikes      uint64      `json:"total_likes"`
	TipCount        int64       `json:"tip_count"`
	SubscriberCount int64       `json:"subscriber_count"`
	MonthlyEarnings types.Money `json:"monthly_earnings"`
}

// PlatformStats is the platform-wide rollup.
type PlatformStats struct {
	TotalCreators    uint64      `json:"total_creators"`
	TotalContent     uint64      `json:"total_content"`
	PlatformEarnings types.Money `json:"platform_earnings"`
	NextCreatorID    uint64      `json:"next_creator_id"`
	NextContentID    uint64      `json:"next_content_id"`
	NextTipID        uint64      `json:"next_tip_id"`
}
