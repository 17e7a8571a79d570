// Package observability provides a metrics extension for Patron that records
// lifecycle event counts via go-utils MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/patron/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                  = (*MetricsExtension)(nil)
	_ plugin.OnInit                  = (*MetricsExtension)(nil)
	_ plugin.OnCreatorRegistered     = (*MetricsExtension)(nil)
	_ plugin.OnCreatorVerified       = (*MetricsExtension)(nil)
	_ plugin.OnContentCreated        = (*MetricsExtension)(nil)
	_ plugin.OnContentPublished      = (*MetricsExtension)(nil)
	_ plugin.OnContentPurchased      = (*MetricsExtension)(nil)
	_ plugin.OnTipSent               = (*MetricsExtension)(nil)
	_ plugin.OnEarningsWithdrawn     = (*MetricsExtension)(nil)
	_ plugin.OnPlatformFeesWithdrawn = (*MetricsExtension)(nil)
	_ plugin.OnSubscriptionCreated   = (*MetricsExtension)(nil)
	_ plugin.OnSubscriptionExtended  = (*MetricsExtension)(nil)
	_ plugin.OnSubscriptionExpired   = (*MetricsExtension)(nil)
	_ plugin.OnAccessDenied          = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Patron plugin to automatically track platform metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Creator metrics
	CreatorRegistered Counter
	CreatorVerified   Counter

	// Content metrics
	ContentCreated   Counter
	ContentPublished Counter
	ContentPurchased Counter

	// Payment metrics
	TipsSent              Counter
	EarningsWithdrawn     Counter
	PlatformFeesWithdrawn Counter

	// Subscription metrics
	SubscriptionCreated  Counter
	SubscriptionExtended Counter
	SubscriptionExpired  Counter

	// Access metrics
	AccessDenied Counter

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Creator metrics
		CreatorRegistered: factory.Counter("patron.creator.registered"),
		CreatorVerified:   factory.Counter("patron.creator.verified"),

		// Content metrics
		ContentCreated:   factory.Counter("patron.content.created"),
		ContentPublished: factory.Counter("patron.content.published"),
		ContentPurchased: factory.Counter("patron.content.purchased"),

		// Payment metrics
		TipsSent:              factory.Counter("patron.tip.sent"),
		EarningsWithdrawn:     factory.Counter("patron.earnings.withdrawn"),
		PlatformFeesWithdrawn: factory.Counter("patron.platform_fees.withdrawn"),

		// Subscription metrics
		SubscriptionCreated:  factory.Counter("patron.subscription.created"),
		SubscriptionExtended: factory.Counter("patron.subscription.extended"),
		SubscriptionExpired:  factory.Counter("patron.subscription.expired"),

		// Access metrics
		AccessDenied: factory.Counter("patron.access.denied"),

		// Error metrics
		StoreErrors:  factory.Counter("patron.store.errors"),
		PluginErrors: factory.Counter("patron.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Creator lifecycle hooks
// ──────────────────────────────────────────────────

// OnCreatorRegistered implements plugin.OnCreatorRegistered.
func (m *MetricsExtension) OnCreatorRegistered(_ context.Context, _ interface{}) error {
	m.CreatorRegistered.Inc()
	return nil
}

// OnCreatorVerified implements plugin.OnCreatorVerified.
func (m *MetricsExtension) OnCreatorVerified(_ context.Context, _ interface{}) error {
	m.CreatorVerified.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Content lifecycle hooks
// ──────────────────────────────────────────────────

// OnContentCreated implements plugin.OnContentCreated.
func (m *MetricsExtension) OnContentCreated(_ context.Context, _ interface{}) error {
	m.ContentCreated.Inc()
	return nil
}

// OnContentPublished implements plugin.OnContentPublished.
func (m *MetricsExtension) OnContentPublished(_ context.Context, _ interface{}) error {
	m.ContentPublished.Inc()
	return nil
}

// OnContentPurchased implements plugin.OnContentPurchased.
func (m *MetricsExtension) OnContentPurchased(_ context.Context, _ interface{}) error {
	m.ContentPurchased.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Payment lifecycle hooks
// ──────────────────────────────────────────────────

// OnTipSent implements plugin.OnTipSent.
func (m *MetricsExtension) OnTipSent(_ context.Context, _ interface{}) error {
	m.TipsSent.Inc()
	return nil
}

// OnEarningsWithdrawn implements plugin.OnEarningsWithdrawn.
func (m *MetricsExtension) OnEarningsWithdrawn(_ context.Context, _ interface{}) error {
	m.EarningsWithdrawn.Inc()
	return nil
}

// OnPlatformFeesWithdrawn implements plugin.OnPlatformFeesWithdrawn.
func (m *MetricsExtension) OnPlatformFeesWithdrawn(_ context.Context, _ interface{}) error {
	m.PlatformFeesWithdrawn.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Subscription lifecycle hooks
// ──────────────────────────────────────────────────

// OnSubscriptionCreated implements plugin.OnSubscriptionCreated.
func (m *MetricsExtension) OnSubscriptionCreated(_ context.Context, _ interface{}) error {
	m.SubscriptionCreated.Inc()
	return nil
}

// OnSubscriptionExtended implements plugin.OnSubscriptionExtended.
func (m *MetricsExtension) OnSubscriptionExtended(_ context.Context, _ interface{}) error {
	m.SubscriptionExtended.Inc()
	return nil
}

// OnSubscriptionExpired implements plugin.OnSubscriptionExpired.
func (m *MetricsExtension) OnSubscriptionExpired(_ context.Context, _ interface{}) error {
	m.SubscriptionExpired.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Access hooks
// ──────────────────────────────────────────────────

// OnAccessDenied implements plugin.OnAccessDenied.
func (m *MetricsExtension) OnAccessDenied(_ context.Context, _ string, _ interface{}) error {
	m.AccessDenied.Inc()
	return nil
}
