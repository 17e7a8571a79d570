// Package audithook bridges Patron lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import
// Chronicle directly. Callers inject a RecorderFunc adapter that bridges
// to Chronicle at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/patron/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                  = (*Extension)(nil)
	_ plugin.OnCreatorRegistered     = (*Extension)(nil)
	_ plugin.OnCreatorVerified       = (*Extension)(nil)
	_ plugin.OnContentCreated        = (*Extension)(nil)
	_ plugin.OnContentPublished      = (*Extension)(nil)
	_ plugin.OnContentPurchased      = (*Extension)(nil)
	_ plugin.OnTipSent               = (*Extension)(nil)
	_ plugin.OnEarningsWithdrawn     = (*Extension)(nil)
	_ plugin.OnPlatformFeesWithdrawn = (*Extension)(nil)
	_ plugin.OnSubscriptionCreated   = (*Extension)(nil)
	_ plugin.OnSubscriptionExtended  = (*Extension)(nil)
	_ plugin.OnSubscriptionExpired   = (*Extension)(nil)
	_ plugin.OnAccessDenied          = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// This matches chronicle.Emitter but is defined locally so that the
// audit_hook package does not import Chronicle directly; callers inject
// the concrete *chronicle.Chronicle at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
// It mirrors chronicle/audit.Event but avoids a module dependency.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Patron lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Creator lifecycle hooks
// ──────────────────────────────────────────────────

// OnCreatorRegistered implements plugin.OnCreatorRegistered.
func (e *Extension) OnCreatorRegistered(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionCreatorRegistered, SeverityInfo, OutcomeSuccess,
		ResourceCreator, "", CategoryCreator, nil,
		"event", "creator_registered",
	)
}

// OnCreatorVerified implements plugin.OnCreatorVerified.
func (e *Extension) OnCreatorVerified(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionCreatorVerified, SeverityInfo, OutcomeSuccess,
		ResourceCreator, "", CategoryCreator, nil,
		"event", "creator_verified",
	)
}

// ──────────────────────────────────────────────────
// Content lifecycle hooks
// ──────────────────────────────────────────────────

// OnContentCreated implements plugin.OnContentCreated.
func (e *Extension) OnContentCreated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionContentCreated, SeverityInfo, OutcomeSuccess,
		ResourceContent, "", CategoryContent, nil,
		"event", "content_created",
	)
}

// OnContentPublished implements plugin.OnContentPublished.
func (e *Extension) OnContentPublished(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionContentPublished, SeverityInfo, OutcomeSuccess,
		ResourceContent, "", CategoryContent, nil,
		"event", "content_published",
	)
}

// OnContentPurchased implements plugin.OnContentPurchased.
func (e *Extension) OnContentPurchased(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionContentPurchased, SeverityInfo, OutcomeSuccess,
		ResourcePurchase, "", CategoryPayment, nil,
		"event", "content_purchased",
	)
}

// ──────────────────────────────────────────────────
// Payment lifecycle hooks
// ──────────────────────────────────────────────────

// OnTipSent implements plugin.OnTipSent.
func (e *Extension) OnTipSent(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionTipSent, SeverityInfo, OutcomeSuccess,
		ResourceTip, "", CategoryPayment, nil,
		"event", "tip_sent",
	)
}

// OnEarningsWithdrawn implements plugin.OnEarningsWithdrawn.
func (e *Extension) OnEarningsWithdrawn(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionEarningsWithdrawn, SeverityInfo, OutcomeSuccess,
		ResourcePayout, "", CategoryPayment, nil,
		"event", "earnings_withdrawn",
	)
}

// OnPlatformFeesWithdrawn implements plugin.OnPlatformFeesWithdrawn.
func (e *Extension) OnPlatformFeesWithdrawn(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionPlatformFeesWithdrawn, SeverityWarning, OutcomeSuccess,
		ResourcePayout, "", CategoryPayment, nil,
		"event", "platform_fees_withdrawn",
	)
}

// ──────────────────────────────────────────────────
// Subscription lifecycle hooks
// ──────────────────────────────────────────────────

// OnSubscriptionCreated implements plugin.OnSubscriptionCreated.
func (e *Extension) OnSubscriptionCreated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionSubscriptionCreated, SeverityInfo, OutcomeSuccess,
		ResourceSubscription, "", CategorySubscription, nil,
		"event", "subscription_created",
	)
}

// OnSubscriptionExtended implements plugin.OnSubscriptionExtended.
func (e *Extension) OnSubscriptionExtended(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionSubscriptionExtended, SeverityInfo, OutcomeSuccess,
		ResourceSubscription, "", CategorySubscription, nil,
		"event", "subscription_extended",
	)
}

// OnSubscriptionExpired implements plugin.OnSubscriptionExpired.
func (e *Extension) OnSubscriptionExpired(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionSubscriptionExpired, SeverityInfo, OutcomeSuccess,
		ResourceSubscription, "", CategorySubscription, nil,
		"event", "subscription_expired",
	)
}

// ──────────────────────────────────────────────────
// Access hooks
// ──────────────────────────────────────────────────

// OnAccessDenied implements plugin.OnAccessDenied.
func (e *Extension) OnAccessDenied(ctx context.Context, viewer string, _ interface{}) error {
	return e.record(ctx, ActionAccessDenied, SeverityWarning, OutcomeFailure,
		ResourceAccess, "", CategoryAccess, nil,
		"viewer", viewer,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
