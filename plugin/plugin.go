// Package plugin provides an extensible plugin system for Patron.
// Plugins can hook into various lifecycle events to extend functionality.
package plugin

import (
	"context"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Creator lifecycle hooks
// ──────────────────────────────────────────────────

// OnCreatorRegistered is called when a new creator profile is registered.
type OnCreatorRegistered interface {
	Plugin
	OnCreatorRegistered(ctx context.Context, creator interface{}) error
}

// OnCreatorVerified is called when a creator is verified by the platform.
type OnCreatorVerified interface {
	Plugin
	OnCreatorVerified(ctx context.Context, creator interface{}) error
}

// ──────────────────────────────────────────────────
// Content lifecycle hooks
// ──────────────────────────────────────────────────

// OnContentCreated is called when a content draft is created.
type OnContentCreated interface {
	Plugin
	OnContentCreated(ctx context.Context, content interface{}) error
}

// OnContentPublished is called when content goes live.
type OnContentPublished interface {
	Plugin
	OnContentPublished(ctx context.Context, content interface{}) error
}

// ──────────────────────────────────────────────────
// Payment hooks
// ──────────────────────────────────────────────────

// OnContentPurchased is called after a purchase settles.
type OnContentPurchased interface {
	Plugin
	OnContentPurchased(ctx context.Context, purchase interface{}) error
}

// OnTipSent is called after a tip settles.
type OnTipSent interface {
	Plugin
	OnTipSent(ctx context.Context, tip interface{}) error
}

// OnEarningsWithdrawn is called when a creator withdraws their balance.
type OnEarningsWithdrawn interface {
	Plugin
	OnEarningsWithdrawn(ctx context.Context, payout interface{}) error
}

// OnPlatformFeesWithdrawn is called when the admin sweeps platform fees.
type OnPlatformFeesWithdrawn interface {
	Plugin
	OnPlatformFeesWithdrawn(ctx context.Context, payout interface{}) error
}

// ──────────────────────────────────────────────────
// Subscription lifecycle hooks
// ──────────────────────────────────────────────────

// OnSubscriptionCreated is called when a new subscription is created.
type OnSubscriptionCreated interface {
	Plugin
	OnSubscriptionCreated(ctx context.Context, sub interface{}) error
}

// OnSubscriptionExtended is called when a re-subscribe extends an
// existing window.
type OnSubscriptionExtended interface {
	Plugin
	OnSubscriptionExtended(ctx context.Context, sub interface{}) error
}

// OnSubscriptionExpired is called when the sweeper marks a subscription
// expired.
type OnSubscriptionExpired interface {
	Plugin
	OnSubscriptionExpired(ctx context.Context, sub interface{}) error
}

// ──────────────────────────────────────────────────
// Access hooks
// ──────────────────────────────────────────────────

// OnAccessDenied is called when an access check refuses a viewer.
type OnAccessDenied interface {
	Plugin
	OnAccessDenied(ctx context.Context, viewer string, decision interface{}) error
}
