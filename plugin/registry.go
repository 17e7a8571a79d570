package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                  []OnInit
	onShutdown              []OnShutdown
	onCreatorRegistered     []OnCreatorRegistered
	onCreatorVerified       []OnCreatorVerified
	onContentCreated        []OnContentCreated
	onContentPublished      []OnContentPublished
	onContentPurchased      []OnContentPurchased
	onTipSent               []OnTipSent
	onEarningsWithdrawn     []OnEarningsWithdrawn
	onPlatformFeesWithdrawn []OnPlatformFeesWithdrawn
	onSubscriptionCreated   []OnSubscriptionCreated
	onSubscriptionExtended  []OnSubscriptionExtended
	onSubscriptionExpired   []OnSubscriptionExpired
	onAccessDenied          []OnAccessDenied
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnCreatorRegistered); ok {
		r.onCreatorRegistered = append(r.onCreatorRegistered, v)
	}
	if v, ok := p.(OnCreatorVerified); ok {
		r.onCreatorVerified = append(r.onCreatorVerified, v)
	}
	if v, ok := p.(OnContentCreated); ok {
		r.onContentCreated = append(r.onContentCreated, v)
	}
	if v, ok := p.(OnContentPublished); ok {
		r.onContentPublished = append(r.onContentPublished, v)
	}
	if v, ok := p.(OnContentPurchased); ok {
		r.onContentPurchased = append(r.onContentPurchased, v)
	}
	if v, ok := p.(OnTipSent); ok {
		r.onTipSent = append(r.onTipSent, v)
	}
	if v, ok := p.(OnEarningsWithdrawn); ok {
		r.onEarningsWithdrawn = append(r.onEarningsWithdrawn, v)
	}
	if v, ok := p.(OnPlatformFeesWithdrawn); ok {
		r.onPlatformFeesWithdrawn = append(r.onPlatformFeesWithdrawn, v)
	}
	if v, ok := p.(OnSubscriptionCreated); ok {
		r.onSubscriptionCreated = append(r.onSubscriptionCreated, v)
	}
	if v, ok := p.(OnSubscriptionExtended); ok {
		r.onSubscriptionExtended = append(r.onSubscriptionExtended, v)
	}
	if v, ok := p.(OnSubscriptionExpired); ok {
		r.onSubscriptionExpired = append(r.onSubscriptionExpired, v)
	}
	if v, ok := p.(OnAccessDenied); ok {
		r.onAccessDenied = append(r.onAccessDenied, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnCreatorRegistered)(nil)).Elem(), "OnCreatorRegistered")
	checkInterface(reflect.TypeOf((*OnCreatorVerified)(nil)).Elem(), "OnCreatorVerified")
	checkInterface(reflect.TypeOf((*OnContentPublished)(nil)).Elem(), "OnContentPublished")
	checkInterface(reflect.TypeOf((*OnContentPurchased)(nil)).Elem(), "OnContentPurchased")
	checkInterface(reflect.TypeOf((*OnTipSent)(nil)).Elem(), "OnTipSent")
	checkInterface(reflect.TypeOf((*OnSubscriptionCreated)(nil)).Elem(), "OnSubscriptionCreated")
	checkInterface(reflect.TypeOf((*OnAccessDenied)(nil)).Elem(), "OnAccessDenied")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitCreatorRegistered emits a creator registered event.
func (r *Registry) EmitCreatorRegistered(ctx context.Context, creator interface{}) {
	r.mu.RLock()
	plugins := r.onCreatorRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCreatorRegistered(ctx, creator)
		}); err != nil {
			r.logger.Warn("plugin OnCreatorRegistered failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitCreatorVerified emits a creator verified event.
func (r *Registry) EmitCreatorVerified(ctx context.Context, creator interface{}) {
	r.mu.RLock()
	plugins := r.onCreatorVerified
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCreatorVerified(ctx, creator)
		}); err != nil {
			r.logger.Warn("plugin OnCreatorVerified failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitContentCreated emits a content created event.
func (r *Registry) EmitContentCreated(ctx context.Context, content interface{}) {
	r.mu.RLock()
	plugins := r.onContentCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnContentCreated(ctx, content)
		}); err != nil {
			r.logger.Warn("plugin OnContentCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitContentPublished emits a content published event.
func (r *Registry) EmitContentPublished(ctx context.Context, content interface{}) {
	r.mu.RLock()
	plugins := r.onContentPublished
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnContentPublished(ctx, content)
		}); err != nil {
			r.logger.Warn("plugin OnContentPublished failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitContentPurchased emits a content purchased event.
func (r *Registry) EmitContentPurchased(ctx context.Context, purchase interface{}) {
	r.mu.RLock()
	plugins := r.onContentPurchased
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnContentPurchased(ctx, purchase)
		}); err != nil {
			r.logger.Warn("plugin OnContentPurchased failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTipSent emits a tip sent event.
func (r *Registry) EmitTipSent(ctx context.Context, tip interface{}) {
	r.mu.RLock()
	plugins := r.onTipSent
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTipSent(ctx, tip)
		}); err != nil {
			r.logger.Warn("plugin OnTipSent failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEarningsWithdrawn emits an earnings withdrawn event.
func (r *Registry) EmitEarningsWithdrawn(ctx context.Context, payout interface{}) {
	r.mu.RLock()
	plugins := r.onEarningsWithdrawn
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEarningsWithdrawn(ctx, payout)
		}); err != nil {
			r.logger.Warn("plugin OnEarningsWithdrawn failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPlatformFeesWithdrawn emits a platform fees withdrawn event.
func (r *Registry) EmitPlatformFeesWithdrawn(ctx context.Context, payout interface{}) {
	r.mu.RLock()
	plugins := r.onPlatformFeesWithdrawn
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPlatformFeesWithdrawn(ctx, payout)
		}); err != nil {
			r.logger.Warn("plugin OnPlatformFeesWithdrawn failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSubscriptionCreated emits a subscription created event.
func (r *Registry) EmitSubscriptionCreated(ctx context.Context, sub interface{}) {
	r.mu.RLock()
	plugins := r.onSubscriptionCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSubscriptionCreated(ctx, sub)
		}); err != nil {
			r.logger.Warn("plugin OnSubscriptionCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSubscriptionExtended emits a subscription extended event.
func (r *Registry) EmitSubscriptionExtended(ctx context.Context, sub interface{}) {
	r.mu.RLock()
	plugins := r.onSubscriptionExtended
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSubscriptionExtended(ctx, sub)
		}); err != nil {
			r.logger.Warn("plugin OnSubscriptionExtended failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitSubscriptionExpired emits a subscription expired event.
func (r *Registry) EmitSubscriptionExpired(ctx context.Context, sub interface{}) {
	r.mu.RLock()
	plugins := r.onSubscriptionExpired
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnSubscriptionExpired(ctx, sub)
		}); err != nil {
			r.logger.Warn("plugin OnSubscriptionExpired failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitAccessDenied emits an access denied event.
func (r *Registry) EmitAccessDenied(ctx context.Context, viewer string, decision interface{}) {
	r.mu.RLock()
	plugins := r.onAccessDenied
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnAccessDenied(ctx, viewer, decision)
		}); err != nil {
			r.logger.Warn("plugin OnAccessDenied failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the settlement pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
