package extension

import (
	"time"

	patron "github.com/xraph/patron"
	"github.com/xraph/patron/plugin"
	"github.com/xraph/patron/store"
	"github.com/xraph/patron/wallet"
)

// Option configures the Patron Forge extension.
type Option func(*Extension)

// WithStore sets the store for the patron engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithWallet sets the wallet backend funds move through.
func WithWallet(w wallet.Wallet) Option {
	return func(e *Extension) {
		e.wallet = w
	}
}

// WithPatronOption passes a patron.Option through to the underlying engine.
func WithPatronOption(opt patron.Option) Option {
	return func(e *Extension) {
		e.patronOpts = append(e.patronOpts, opt)
	}
}

// WithPlugin registers a patron plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.patronOpts = append(e.patronOpts, patron.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableRoutes prevents HTTP route registration.
func WithDisableRoutes() Option {
	return func(e *Extension) { e.config.DisableRoutes = true }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithBasePath sets the URL prefix for patron routes.
func WithBasePath(path string) Option {
	return func(e *Extension) { e.config.BasePath = path }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithAdmin sets the platform admin principal.
func WithAdmin(principal string) Option {
	return func(e *Extension) { e.config.Admin = principal }
}

// WithCurrency sets the platform currency.
func WithCurrency(currency string) Option {
	return func(e *Extension) { e.config.Currency = currency }
}

// WithFeeRate sets the platform fee percentage.
func WithFeeRate(percent int64) Option {
	return func(e *Extension) { e.config.FeeRatePercent = percent }
}

// WithMinPrice sets the minimum content price in minor units.
func WithMinPrice(minor int64) Option {
	return func(e *Extension) { e.config.MinPrice = minor }
}

// WithSweepInterval sets how often the expiry sweeper runs.
func WithSweepInterval(d time.Duration) Option {
	return func(e *Extension) { e.config.SweepInterval = d }
}
