// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/asset-tracker/internal/currencyutils"
	"fjacquet/asset-tracker/internal/logging"
	"fjacquet/asset-tracker/internal/models"
	"fjacquet/asset-tracker/internal/valuation"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Currency struct {
		Default string            `mapstructure:"default" yaml:"default"`
		Rates   map[string]string `mapstructure:"rates" yaml:"rates"`
	} `mapstructure:"currency" yaml:"currency"`

	Data struct {
		Backend string `mapstructure:"backend" yaml:"backend"`
		Path    string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"data" yaml:"data"`

	Report struct {
		GroupBy string `mapstructure:"group_by" yaml:"group_by"`
		Range   string `mapstructure:"range" yaml:"range"`
	} `mapstructure:"report" yaml:"report"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Server struct {
		Addr        string   `mapstructure:"addr" yaml:"addr"`
		CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigWithFile("")
}

// InitializeConfigWithFile is InitializeConfig reading an explicit config
// file instead of searching the default locations. An empty path searches.
func InitializeConfigWithFile(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.asset-tracker")
		v.AddConfigPath(".asset-tracker")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("FAT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	normalize(&config)

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("currency.default", string(models.USD))
	v.SetDefault("currency.rates", map[string]string{})

	v.SetDefault("data.backend", BackendFile)
	v.SetDefault("data.path", DefaultDataPath())

	v.SetDefault("report.group_by", string(valuation.GroupByCategory))
	v.SetDefault("report.range", string(valuation.RangeLast12))

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173"})
}

// Defaults returns the built-in configuration, ignoring config files and
// the environment.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	normalize(&config)
	return &config
}

// DefaultDataPath is the data file used when none is configured.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".asset-tracker", "data.json")
	}
	return filepath.Join(home, ".asset-tracker", "data.json")
}

func normalize(config *Config) {
	config.Log.Level = strings.ToLower(strings.TrimSpace(config.Log.Level))
	config.Log.Format = strings.ToLower(strings.TrimSpace(config.Log.Format))
	config.Currency.Default = strings.ToUpper(strings.TrimSpace(config.Currency.Default))
	config.Data.Backend = strings.ToLower(strings.TrimSpace(config.Data.Backend))
	config.Report.GroupBy = strings.ToLower(strings.TrimSpace(config.Report.GroupBy))
}

// Validate normalizes the configuration and checks it again. It is used after
// command line flags override loaded values.
func (c *Config) Validate() error {
	normalize(c)
	if err := validateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if _, err := models.ParseCurrency(config.Currency.Default); err != nil {
		return fmt.Errorf("currency.default: %w", err)
	}

	if _, err := config.Rates(); err != nil {
		return fmt.Errorf("currency.rates: %w", err)
	}

	if config.Data.Backend != BackendFile && config.Data.Backend != BackendSQLite {
		return fmt.Errorf("invalid data backend: %s (must be '%s' or '%s')", config.Data.Backend, BackendFile, BackendSQLite)
	}

	if config.Data.Path == "" {
		return fmt.Errorf("data.path must not be empty")
	}

	if _, err := valuation.ParseGroupBy(config.Report.GroupBy); err != nil {
		return fmt.Errorf("report.group_by: %w", err)
	}

	if _, err := valuation.ParseRange(config.Report.Range); err != nil {
		return fmt.Errorf("report.range: %w", err)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	return nil
}

// Rates returns the built-in rate table with the configured overrides applied.
func (c *Config) Rates() (currencyutils.RateTable, error) {
	rates, err := currencyutils.DefaultRates().WithOverrides(c.Currency.Rates)
	if err != nil {
		return nil, err
	}
	if err := rates.Validate(models.SupportedCurrencies()...); err != nil {
		return nil, err
	}
	return rates, nil
}

// ReportingCurrency returns the validated default reporting currency.
func (c *Config) ReportingCurrency() models.Currency {
	return models.Currency(c.Currency.Default)
}

// GroupBy returns the validated default breakdown dimension.
func (c *Config) GroupBy() valuation.GroupBy {
	g, _ := valuation.ParseGroupBy(c.Report.GroupBy)
	return g
}

// Range returns the validated default chart range.
func (c *Config) Range() valuation.Range {
	r, _ := valuation.ParseRange(c.Report.Range)
	return r
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() rune {
	for _, r := range c.CSV.Delimiter {
		return r
	}
	return ','
}

// NewLogger builds the application logger from the log section.
func (c *Config) NewLogger() logging.Logger {
	return logging.NewLogrusAdapter(c.Log.Level, c.Log.Format)
}
