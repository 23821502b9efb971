// Package container provides dependency injection for the asset-tracker application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"time"

	"fjacquet/asset-tracker/internal/config"
	"fjacquet/asset-tracker/internal/currencyutils"
	"fjacquet/asset-tracker/internal/exporter"
	"fjacquet/asset-tracker/internal/ids"
	"fjacquet/asset-tracker/internal/importer"
	"fjacquet/asset-tracker/internal/ledger"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/store"
	"fjacquet/asset-tracker/internal/valuation"
)

// Container holds all application dependencies and provides methods to access them.
// It acts as the central registry for dependency injection, ensuring that all
// components receive their required dependencies through constructors.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	store    store.Store
	rates    currencyutils.RateTable
	engine   *valuation.Engine
	ids      ids.Generator
	now      func() time.Time
	importer *importer.Importer
	exporter *exporter.Exporter
}

// Options overrides the collaborators NewContainerWithOptions would otherwise
// build from configuration. Zero fields keep the defaults.
type Options struct {
	Logger logging.Logger
	Store  store.Store
	IDs    ids.Generator
	Now    func() time.Time
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config) (*Container, error) {
	return NewContainerWithOptions(cfg, Options{})
}

// NewContainerWithOptions is NewContainer with injected collaborators, used by
// tests and by the demo preview.
func NewContainerWithOptions(cfg *config.Config, opts Options) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := opts.Logger
	if logger == nil {
		logger = cfg.NewLogger()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	gen := opts.IDs
	if gen == nil {
		gen = ids.UUID()
	}

	// A bad rate table is a deployment defect: fail before touching data
	rates, err := cfg.Rates()
	if err != nil {
		return nil, fmt.Errorf("invalid exchange rates: %w", err)
	}

	st := opts.Store
	if st == nil {
		st, err = store.New(cfg, logger.WithComponent("store"), now)
		if err != nil {
			return nil, fmt.Errorf("error opening data store: %w", err)
		}
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldBackend, Value: cfg.Data.Backend},
		logging.Field{Key: logging.FieldCurrency, Value: cfg.Currency.Default})

	return &Container{
		logger:   logger,
		config:   cfg,
		store:    st,
		rates:    rates,
		engine:   valuation.NewEngine(rates, logger.WithComponent("valuation")),
		ids:      gen,
		now:      now,
		importer: importer.New(gen, logger.WithComponent("importer")),
		exporter: exporter.New(cfg.Delimiter(), now, logger.WithComponent("exporter")),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the dataset store.
func (c *Container) GetStore() store.Store {
	return c.store
}

// GetRates returns a copy of the exchange rate table in effect.
func (c *Container) GetRates() currencyutils.RateTable {
	return c.rates.Clone()
}

// GetEngine returns the valuation engine.
func (c *Container) GetEngine() *valuation.Engine {
	return c.engine
}

// GetIDs returns the id generator.
func (c *Container) GetIDs() ids.Generator {
	return c.ids
}

// Now returns the current time from the container's clock.
func (c *Container) Now() time.Time {
	return c.now()
}

// GetImporter returns the import document parser.
func (c *Container) GetImporter() *importer.Importer {
	return c.importer
}

// GetExporter returns the CSV and backup writer.
func (c *Container) GetExporter() *exporter.Exporter {
	return c.exporter
}

// NewLedger returns a Ledger editing ds with the container's id generator
// and clock.
func (c *Container) NewLedger(ds *models.Dataset) *ledger.Ledger {
	return ledger.New(ds, c.ids, c.now)
}

// Close performs cleanup of container resources.
// This method should be called when the container is no longer needed.
func (c *Container) Close() error {
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("error closing data store: %w", err)
	}
	c.logger.Debug("Container closed")
	return nil
}
