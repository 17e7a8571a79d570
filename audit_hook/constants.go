package audithook

// Action constants for audit events.
const (
	// Creator actions
	ActionCreatorRegistered = "creator.registered"
	ActionCreatorVerified   = "creator.verified"

	// Content actions
	ActionContentCreated   = "content.created"
	ActionContentPublished = "content.published"
	ActionContentPurchased = "content.purchased"

	// Payment actions
	ActionTipSent               = "tip.sent"
	ActionEarningsWithdrawn     = "earnings.withdrawn"
	ActionPlatformFeesWithdrawn = "platform_fees.withdrawn"

	// Subscription actions
	ActionSubscriptionCreated  = "subscription.created"
	ActionSubscriptionExtended = "subscription.extended"
	ActionSubscriptionExpired  = "subscription.expired"

	// Access actions
	ActionAccessDenied = "access.denied"
)

// Resource constants for audit events.
const (
	ResourceCreator      = "creator"
	ResourceContent      = "content"
	ResourcePurchase     = "purchase"
	ResourceTip          = "tip"
	ResourcePayout       = "payout"
	ResourceSubscription = "subscription"
	ResourceAccess       = "access"
)

// Category constants for audit events.
const (
	CategoryCreator      = "creator"
	CategoryContent      = "content"
	CategoryPayment      = "payment"
	CategorySubscription = "subscription"
	CategoryAccess       = "access"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
