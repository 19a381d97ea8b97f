// Package config provides configuration loading and validation for the
// hierpart CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Sentinel validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidLogFormat    = errors.New("invalid log format")
	ErrMetricsAddrMissing  = errors.New("metrics enabled but no listen address configured")
)

// Output formats accepted by result-printing commands.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Default configuration values.
const (
	defaultOutputFormat = OutputTable
	defaultLogLevel     = "info"
	defaultLogFormat    = "text"
	defaultMetricsAddr  = "127.0.0.1:9464"

	envPrefix = "HIERPART"
)

// Config holds all configuration for the hierpart CLI.
type Config struct {
	Checks  bool          `mapstructure:"checks"  yaml:"checks"`
	Output  OutputConfig  `mapstructure:"output"  yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// OutputConfig controls how command results are rendered.
type OutputConfig struct {
	Format  string `mapstructure:"format"   yaml:"format"`
	NoColor bool   `mapstructure:"no_color" yaml:"no_color"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig controls the Prometheus scrape endpoint of serving commands.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr    string `mapstructure:"addr"    yaml:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Checks: true,
		Output: OutputConfig{Format: defaultOutputFormat},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Metrics: MetricsConfig{Addr: defaultMetricsAddr},
	}
}

// Load reads configuration from the given file (optional) and HIERPART_*
// environment variables, layered over the defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := Default()
	v.SetDefault("checks", def.Checks)
	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("output.no_color", def.Output.NoColor)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("metrics.enabled", def.Metrics.Enabled)
	v.SetDefault("metrics.addr", def.Metrics.Addr)

	if path != "" {
		v.SetConfigFile(path)

		err := v.ReadInConfig()
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	switch c.Output.Format {
	case OutputTable, OutputJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Output.Format)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return ErrMetricsAddrMissing
	}

	return nil
}

// WriteDefault writes the default configuration to path as YAML.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
