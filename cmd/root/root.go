// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"
	"io"

	"fjacquet/asset-tracker/internal/config"
	"fjacquet/asset-tracker/internal/container"
	"fjacquet/asset-tracker/internal/ledger"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/report"
	"fjacquet/asset-tracker/internal/valuation"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by every command. Empty values
// keep the configured setting.
type CommonFlags struct {
	ConfigFile   string
	DataPath     string
	Backend      string
	Currency     string
	GroupBy      string
	OutputFormat string
	LogLevel     string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded before any subcommand runs
	AppConfig *config.Config

	// AppContainer holds the wired dependencies of the running command
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "asset-tracker",
		Short: "Track household net worth across accounts, owners and currencies.",
		Long: `asset-tracker records dated balances of household accounts and values them
in a single reporting currency: the current net worth, a breakdown by category,
account or owner, and the month-by-month history.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to asset-tracker!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			Teardown()
		},
	}

	// SharedFlags holds the persistent flag values
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	pf := Cmd.PersistentFlags()
	pf.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.asset-tracker, .asset-tracker and .)")
	pf.StringVarP(&SharedFlags.DataPath, "data", "d", "", "Data file or database path")
	pf.StringVar(&SharedFlags.Backend, "backend", "", "Data backend: file or sqlite")
	pf.StringVarP(&SharedFlags.Currency, "currency", "c", "", "Reporting currency, e.g. USD")
	pf.StringVarP(&SharedFlags.GroupBy, "group-by", "g", "", "Breakdown dimension: category, account or owner")
	pf.StringVarP(&SharedFlags.OutputFormat, "format", "f", report.FormatText, "Output format: text or json")
	pf.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
}

// Setup loads the environment and configuration, applies flag overrides and
// wires the container.
func Setup() error {
	config.LoadEnv(Log)

	cfg, err := config.InitializeConfigWithFile(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	Log = cfg.NewLogger()
	AppConfig = cfg

	c, err := container.NewContainerWithOptions(cfg, container.Options{Logger: Log})
	if err != nil {
		return err
	}
	AppContainer = c
	return nil
}

func applyOverrides(cfg *config.Config) {
	if SharedFlags.DataPath != "" {
		cfg.Data.Path = SharedFlags.DataPath
	}
	if SharedFlags.Backend != "" {
		cfg.Data.Backend = SharedFlags.Backend
	}
	if SharedFlags.Currency != "" {
		cfg.Currency.Default = SharedFlags.Currency
	}
	if SharedFlags.GroupBy != "" {
		cfg.Report.GroupBy = SharedFlags.GroupBy
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
}

// Teardown releases the container, if one was created.
func Teardown() {
	if AppContainer == nil {
		return
	}
	if err := AppContainer.Close(); err != nil {
		Log.WithError(err).Warn("Failed to close container")
	}
	AppContainer = nil
}

// GetContainer returns the application container, nil before Setup.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the application configuration, nil before Setup.
func GetConfig() *config.Config {
	return AppConfig
}

// ReportingCurrency returns the --currency flag or the configured default.
func ReportingCurrency() (models.Currency, error) {
	if SharedFlags.Currency != "" {
		return models.ParseCurrency(SharedFlags.Currency)
	}
	return AppConfig.ReportingCurrency(), nil
}

// GroupBy returns the --group-by flag or the configured default.
func GroupBy() (valuation.GroupBy, error) {
	if SharedFlags.GroupBy != "" {
		return valuation.ParseGroupBy(SharedFlags.GroupBy)
	}
	return AppConfig.GroupBy(), nil
}

// Renderer returns the report renderer for the --format flag.
func Renderer() (*report.Renderer, error) {
	return report.New(SharedFlags.OutputFormat)
}

// LoadDataset reads the dataset from the configured store.
func LoadDataset(ctx context.Context) (*models.Dataset, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	ds, err := AppContainer.GetStore().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading data: %w", err)
	}
	return ds, nil
}

// Mutate loads the dataset, applies edit through a ledger and saves the
// result. Nothing is saved when edit fails.
func Mutate(ctx context.Context, edit func(l *ledger.Ledger) error) (*models.Dataset, error) {
	ds, err := LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	if err := edit(AppContainer.NewLedger(ds)); err != nil {
		return nil, err
	}
	if err := AppContainer.GetStore().Save(ctx, ds); err != nil {
		return nil, fmt.Errorf("error saving data: %w", err)
	}
	return ds, nil
}

// Out is where command results are written.
func Out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
