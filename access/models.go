// Package access defines the decision type returned by the content access
// engine.
package access

// Grant names the rule that allowed access.
type Grant string

const (
	GrantFree         Grant = "free"         // non-premium content
	GrantOwner        Grant = "owner"        // caller owns the creator profile
	GrantPurchase     Grant = "purchase"     // purchase receipt exists
	GrantSubscription Grant = "subscription" // active subscription to the creator
)

// Decision is the result of evaluating (user, content). It is computed
// fresh on every check. Nothing is cached beyond the underlying records.
type Decision struct {
	Allowed   bool   `json:"allowed"`
	ContentID uint64 `json:"content_id"`
	Grant     Grant  `json:"grant,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
