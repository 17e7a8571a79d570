package extension

import (
	"time"

	patron "github.com/xraph/patron"
)

// Config holds the Patron extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.patron" or "patron" keys).
type Config struct {
	// DisableRoutes prevents HTTP route registration.
	DisableRoutes bool `json:"disable_routes" mapstructure:"disable_routes" yaml:"disable_routes"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// BasePath is the URL prefix for patron routes (default: "/patron").
	BasePath string `json:"base_path" mapstructure:"base_path" yaml:"base_path"`

	// Admin is the platform admin principal. Creator verification, tier
	// assignment and platform fee withdrawal are restricted to it.
	Admin string `json:"admin" mapstructure:"admin" yaml:"admin"`

	// Currency is the minor-unit currency all amounts are denominated in
	// (default: "stx").
	Currency string `json:"currency" mapstructure:"currency" yaml:"currency"`

	// FeeRatePercent is the platform fee percentage taken from every
	// transfer (default: 5).
	FeeRatePercent int64 `json:"fee_rate_percent" mapstructure:"fee_rate_percent" yaml:"fee_rate_percent"`

	// MinPrice is the minimum content price in minor units (default: 1000000).
	MinPrice int64 `json:"min_price" mapstructure:"min_price" yaml:"min_price"`

	// SweepInterval is how often the expiry sweeper scans for lapsed
	// subscriptions (default: 1m).
	SweepInterval time.Duration `json:"sweep_interval" mapstructure:"sweep_interval" yaml:"sweep_interval"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BasePath:       "/patron",
		Currency:       patron.DefaultCurrency,
		FeeRatePercent: patron.DefaultFeeRatePercent,
		MinPrice:       patron.DefaultMinPrice,
		SweepInterval:  patron.DefaultSweepInterval,
	}
}
