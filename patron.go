package patron

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/patron/platform"
	"github.com/xraph/patron/plugin"
	"github.com/xraph/patron/store"
	"github.com/xraph/patron/subscription"
	"github.com/xraph/patron/wallet"
)

// Defaults. Amounts are minor units of the configured currency; the stock
// configuration is micro-STX with a 1 STX minimum content price.
const (
	DefaultCurrency       = "stx"
	DefaultFeeRatePercent = 5
	DefaultMinPrice       = 1_000_000
	DefaultPeriod         = 30 * 24 * time.Hour
	DefaultSweepInterval  = time.Minute
)

// Default monthly tier rates in minor units.
var defaultTierRates = map[subscription.Tier]int64{
	subscription.TierBasic:   1_000_000,
	subscription.TierPremium: 5_000_000,
	subscription.TierVIP:     10_000_000,
}

// Engine is the creator monetization engine. It owns the authoritative
// records (creators, content, purchases, subscriptions, tips, platform
// fees) and moves spendable funds through an external wallet substrate.
type Engine struct {
	store   store.Store
	wallet  wallet.Wallet
	plugins *plugin.Registry
	logger  *slog.Logger

	// Background workers
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	// Configuration
	currency       string
	admin          string
	feeRatePercent int64
	minPrice       int64
	tierRates      map[subscription.Tier]int64
	period         time.Duration
	sweepInterval  time.Duration
	sweepBatch     int
}

// New creates a new Engine instance backed by the given store and wallet.
func New(s store.Store, w wallet.Wallet, opts ...Option) *Engine {
	e := &Engine{
		store:          s,
		wallet:         w,
		plugins:        plugin.NewRegistry(),
		logger:         slog.Default(),
		stopChan:       make(chan struct{}),
		currency:       DefaultCurrency,
		feeRatePercent: DefaultFeeRatePercent,
		minPrice:       DefaultMinPrice,
		tierRates:      defaultTierRates,
		period:         DefaultPeriod,
		sweepInterval:  DefaultSweepInterval,
		sweepBatch:     100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithAdmin sets the platform admin principal. Verification, creator tier
// changes and platform fee withdrawal require this caller.
func WithAdmin(principal string) Option {
	return func(e *Engine) {
		e.admin = principal
	}
}

// WithCurrency sets the minor-unit currency all amounts are denominated in.
func WithCurrency(currency string) Option {
	return func(e *Engine) {
		e.currency = currency
	}
}

// WithFeeRate sets the platform fee percentage taken from every transfer.
func WithFeeRate(percent int64) Option {
	return func(e *Engine) {
		e.feeRatePercent = percent
	}
}

// WithMinPrice sets the minimum content price in minor units.
func WithMinPrice(minor int64) Option {
	return func(e *Engine) {
		e.minPrice = minor
	}
}

// WithTierRates overrides the monthly subscription rates per tier, in
// minor units.
func WithTierRates(rates map[subscription.Tier]int64) Option {
	return func(e *Engine) {
		e.tierRates = rates
	}
}

// WithSubscriptionPeriod sets the length of one subscription month.
func WithSubscriptionPeriod(d time.Duration) Option {
	return func(e *Engine) {
		e.period = d
	}
}

// WithSweepInterval sets how often the expiry sweeper scans for lapsed
// subscriptions.
func WithSweepInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.sweepInterval = d
	}
}

// Start migrates the store, initializes plugins and begins the expiry
// sweeper.
func (e *Engine) Start(ctx context.Context) error {
	// Migrate database
	if err := e.store.Migrate(ctx); err != nil {
		return err
	}

	// Initialize the platform ledger on first boot
	if _, err := e.store.GetPlatform(ctx); err != nil {
		if !IsNotFound(err) {
			return err
		}
		if err := e.store.UpdatePlatform(ctx, platform.NewState(e.currency)); err != nil {
			return err
		}
	}

	// Initialize plugins
	e.plugins.EmitInit(ctx, e)

	// Start expiry sweeper
	e.wg.Add(1)
	go e.expirySweeper(ctx)

	e.logger.Info("patron started",
		"currency", e.currency,
		"fee_rate_percent", e.feeRatePercent,
		"min_price", e.minPrice,
		"sweep_interval", e.sweepInterval,
	)

	return nil
}

// Stop shuts down the Engine.
func (e *Engine) Stop() error {
	e.stopOnce.Do(func() {
		close(e.stopChan)
	})
	e.wg.Wait()

	ctx := context.Background()
	e.plugins.EmitShutdown(ctx)

	return e.store.Close()
}

// Plugins exposes the plugin registry.
func (e *Engine) Plugins() *plugin.Registry {
	return e.plugins
}

// expirySweeper periodically marks lapsed subscriptions expired and emits
// the expiry hook once per subscription. Activity checks compare EndDate
// directly, so access control never depends on the sweeper having run.
func (e *Engine) expirySweeper(ctx context.Context) {
	defer e.wg.Done()

	ticker := time.NewTicker(e.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopChan:
			return
		case <-ticker.C:
			e.sweepExpired(ctx)
		}
	}
}

func (e *Engine) sweepExpired(ctx context.Context) {
	now := time.Now()
	lapsed, err := e.store.ListLapsedSubscriptions(ctx, now, e.sweepBatch)
	if err != nil {
		e.logger.Error("expiry sweep failed", "error", err)
		return
	}

	for _, sub := range lapsed {
		sub.Status = subscription.StatusExpired
		sub.Touch()
		if err := e.store.PutSubscription(ctx, sub); err != nil {
			e.logger.Error("failed to expire subscription",
				"subscriber", sub.Subscriber,
				"creator_id", sub.CreatorID,
				"error", err,
			)
			continue
		}
		e.plugins.EmitSubscriptionExpired(ctx, sub)
	}

	if len(lapsed) > 0 {
		e.logger.Debug("swept expired subscriptions", "count", len(lapsed))
	}
}

// platformState loads the platform ledger, falling back to a fresh one
// when the store has no singleton yet.
func (e *Engine) platformState(ctx context.Context) (*platform.State, error) {
	state, err := e.store.GetPlatform(ctx)
	if err == nil {
		return state, nil
	}
	if IsNotFound(err) {
		return platform.NewState(e.currency), nil
	}
	return nil, err
}
