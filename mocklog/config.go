/*
Copyright © 2024 Acronis International GmbH.

Released under MIT license.
*/

package mocklog

import (
	"github.com/acronis/go-mocklog/config"
	"github.com/acronis/go-mocklog/log"
)

const cfgDefaultKeyPrefix = "mocklog"

const (
	cfgKeyDiagnosticsEnabled = "diagnostics.enabled"
	cfgKeyDiagnosticsLog     = "diagnostics.log"
	cfgKeyMetricsEnabled     = "metrics.enabled"
	cfgKeyMetricsNamespace   = "metrics.namespace"
	cfgKeyMetricsConstLabels = "metrics.constLabels"
)

// Config represents a set of configuration parameters for the Registry.
// Configuration can be loaded in different formats (YAML, JSON) using config.Loader, viper,
// or with json.Unmarshal/yaml.Unmarshal functions directly.
type Config struct {
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics" yaml:"diagnostics" json:"diagnostics"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics" json:"metrics"`

	keyPrefix string
}

var _ config.Config = (*Config)(nil)
var _ config.KeyPrefixProvider = (*Config)(nil)

// DiagnosticsConfig configures the logger for messages of the registry itself
// (installed and released overrides, facade registration failures).
type DiagnosticsConfig struct {
	Enabled bool       `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Log     log.Config `mapstructure:"log" yaml:"log" json:"log"`
}

// MetricsConfig configures Prometheus metrics of the registry.
type MetricsConfig struct {
	Enabled     bool              `mapstructure:"enabled" yaml:"enabled" json:"enabled"`
	Namespace   string            `mapstructure:"namespace" yaml:"namespace" json:"namespace"`
	ConstLabels map[string]string `mapstructure:"constLabels" yaml:"constLabels" json:"constLabels"`
}

// ConfigOption is a type for functional options for the Config.
type ConfigOption func(*configOptions)

type configOptions struct {
	keyPrefix string
}

// WithKeyPrefix returns a ConfigOption that sets a key prefix for parsing configuration parameters.
// This prefix will be used by config.Loader.
func WithKeyPrefix(keyPrefix string) ConfigOption {
	return func(o *configOptions) {
		o.keyPrefix = keyPrefix
	}
}

// NewConfig creates a new instance of the Config.
func NewConfig(options ...ConfigOption) *Config {
	var opts = configOptions{keyPrefix: cfgDefaultKeyPrefix}
	for _, opt := range options {
		opt(&opts)
	}
	return &Config{keyPrefix: opts.keyPrefix}
}

// NewDefaultConfig creates a new instance of the Config with default values:
// diagnostics and metrics are disabled, diagnostics go to stderr at "debug" level when enabled.
func NewDefaultConfig(options ...ConfigOption) *Config {
	cfg := NewConfig(options...)
	// Nested log config is read by Config.Set, so it needs no key prefix of its own.
	cfg.Diagnostics.Log = *log.NewDefaultConfig(log.WithKeyPrefix(""))
	cfg.Diagnostics.Log.Level = log.LevelDebug
	cfg.Diagnostics.Log.Output = log.OutputStderr
	return cfg
}

// KeyPrefix returns a key prefix with which all configuration parameters should be presented.
// Implements config.KeyPrefixProvider interface.
func (c *Config) KeyPrefix() string {
	if c.keyPrefix == "" {
		return cfgDefaultKeyPrefix
	}
	return c.keyPrefix
}

// SetProviderDefaults sets default configuration values for the Registry in config.DataProvider.
// Implements config.Config interface.
func (c *Config) SetProviderDefaults(dp config.DataProvider) {
	dp.SetDefault(cfgKeyDiagnosticsEnabled, false)
	logDP := config.NewKeyPrefixedDataProvider(dp, cfgKeyDiagnosticsLog)
	c.Diagnostics.Log.SetProviderDefaults(logDP)
	// Diagnostics are debug messages and must not mix with the stdout of the tested code.
	logDP.SetDefault("level", string(log.LevelDebug))
	logDP.SetDefault("output", string(log.OutputStderr))

	dp.SetDefault(cfgKeyMetricsEnabled, false)
}

// Set sets Registry configuration values from config.DataProvider.
// Implements config.Config interface.
func (c *Config) Set(dp config.DataProvider) error {
	var err error
	if c.Diagnostics.Enabled, err = dp.GetBool(cfgKeyDiagnosticsEnabled); err != nil {
		return err
	}
	if err = c.Diagnostics.Log.Set(config.NewKeyPrefixedDataProvider(dp, cfgKeyDiagnosticsLog)); err != nil {
		return err
	}

	if c.Metrics.Enabled, err = dp.GetBool(cfgKeyMetricsEnabled); err != nil {
		return err
	}
	if c.Metrics.Namespace, err = dp.GetString(cfgKeyMetricsNamespace); err != nil {
		return err
	}
	var constLabels map[string]string
	if err = dp.UnmarshalKey(cfgKeyMetricsConstLabels, &constLabels); err != nil {
		return err
	}
	c.Metrics.ConstLabels = constLabels
	return nil
}

// NewRegistryWithConfig creates a new Registry with the diagnostics logger and metrics collector built from cfg.
// Options override what the configuration defines.
// The returned close function must be called to flush the diagnostics logger.
// Prometheus metrics are created but not registered, see Registry.Metrics.
func NewRegistryWithConfig(cfg *Config, options ...RegistryOption) (*Registry, log.CloseFunc) {
	var cfgOpts []RegistryOption
	closeFn := log.CloseFunc(func() {})
	if cfg.Diagnostics.Enabled {
		var logger log.FieldLogger
		logger, closeFn = log.NewLogger(&cfg.Diagnostics.Log)
		cfgOpts = append(cfgOpts, WithDiagnosticsLogger(logger))
	}
	if cfg.Metrics.Enabled {
		cfgOpts = append(cfgOpts, WithMetrics(NewPrometheusMetricsWithOpts(PrometheusMetricsOpts{
			Namespace:   cfg.Metrics.Namespace,
			ConstLabels: cfg.Metrics.ConstLabels,
		})))
	}
	return NewRegistry(append(cfgOpts, options...)...), closeFn
}
