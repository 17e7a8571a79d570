// Package extension provides the Forge extension adapter for Patron.
//
// It implements the forge.Extension interface to integrate Patron
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.patron" or "patron" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	patron "github.com/xraph/patron"
	"github.com/xraph/patron/store"
	"github.com/xraph/patron/store/memory"
	"github.com/xraph/patron/wallet"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "patron"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Creator monetization engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Patron as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *patron.Engine
	store      store.Store
	wallet     wallet.Wallet
	patronOpts []patron.Option
}

// New creates a new Patron Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Patron instance.
// This is nil until Register is called.
func (e *Extension) Engine() *patron.Engine { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the patron engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use in-memory backends if none were provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}
	if e.wallet == nil {
		e.wallet = wallet.NewMemory(e.config.Currency)
	}

	// Build patron options from resolved config.
	opts := e.buildPatronOpts()

	eng := patron.New(e.store, e.wallet, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*patron.Engine, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("patron: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("patron: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildPatronOpts constructs patron.Option values from the resolved config.
func (e *Extension) buildPatronOpts() []patron.Option {
	opts := make([]patron.Option, 0, len(e.patronOpts)+5)

	if e.config.Admin != "" {
		opts = append(opts, patron.WithAdmin(e.config.Admin))
	}
	if e.config.Currency != "" {
		opts = append(opts, patron.WithCurrency(e.config.Currency))
	}
	if e.config.FeeRatePercent > 0 {
		opts = append(opts, patron.WithFeeRate(e.config.FeeRatePercent))
	}
	if e.config.MinPrice > 0 {
		opts = append(opts, patron.WithMinPrice(e.config.MinPrice))
	}
	if e.config.SweepInterval > 0 {
		opts = append(opts, patron.WithSweepInterval(e.config.SweepInterval))
	}

	// Append any pass-through patron options.
	opts = append(opts, e.patronOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("patron: configuration is required but not found in config files; " +
				"ensure 'extensions.patron' or 'patron' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("patron: configuration loaded",
		forge.F("disable_routes", e.config.DisableRoutes),
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("base_path", e.config.BasePath),
		forge.F("admin", e.config.Admin),
		forge.F("currency", e.config.Currency),
		forge.F("fee_rate_percent", e.config.FeeRatePercent),
		forge.F("min_price", e.config.MinPrice),
		forge.F("sweep_interval", e.config.SweepInterval),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.patron" first (namespaced pattern).
	if cm.IsSet("extensions.patron") {
		if err := cm.Bind("extensions.patron", &cfg); err == nil {
			e.Logger().Debug("patron: loaded config from file",
				forge.F("key", "extensions.patron"),
			)
			return cfg, true
		}
		e.Logger().Warn("patron: failed to bind extensions.patron config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "patron" key.
	if cm.IsSet("patron") {
		if err := cm.Bind("patron", &cfg); err == nil {
			e.Logger().Debug("patron: loaded config from file",
				forge.F("key", "patron"),
			)
			return cfg, true
		}
		e.Logger().Warn("patron: failed to bind patron config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.BasePath == "" {
		cfg.BasePath = defaults.BasePath
	}
	if cfg.Currency == "" {
		cfg.Currency = defaults.Currency
	}
	if cfg.FeeRatePercent == 0 {
		cfg.FeeRatePercent = defaults.FeeRatePercent
	}
	if cfg.MinPrice == 0 {
		cfg.MinPrice = defaults.MinPrice
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = defaults.SweepInterval
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableRoutes {
		yamlConfig.DisableRoutes = true
	}
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.BasePath == "" && programmaticConfig.BasePath != "" {
		yamlConfig.BasePath = programmaticConfig.BasePath
	}
	if yamlConfig.Admin == "" && programmaticConfig.Admin != "" {
		yamlConfig.Admin = programmaticConfig.Admin
	}
	if yamlConfig.Currency == "" && programmaticConfig.Currency != "" {
		yamlConfig.Currency = programmaticConfig.Currency
	}

	// Numeric fields: YAML takes precedence, programmatic fills gaps.
	if yamlConfig.FeeRatePercent == 0 && programmaticConfig.FeeRatePercent != 0 {
		yamlConfig.FeeRatePercent = programmaticConfig.FeeRatePercent
	}
	if yamlConfig.MinPrice == 0 && programmaticConfig.MinPrice != 0 {
		yamlConfig.MinPrice = programmaticConfig.MinPrice
	}
	if yamlConfig.SweepInterval == 0 && programmaticConfig.SweepInterval != 0 {
		yamlConfig.SweepInterval = programmaticConfig.SweepInterval
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
