package trigger

import (
	"context"
	"time"

	"github.com/randalmurphal/trigger/pkg/trigger/config"
	"github.com/sethvargo/go-envconfig"
)

// Configuration keys read by OptionsFromConfig.
const (
	ConfigKeyName    = "name"
	ConfigKeyEnabled = "enabled"
	ConfigKeyMetrics = "metrics"
	ConfigKeyTracing = "tracing"
)

// settingsTimeout bounds environment processing in NewFromFile.
const settingsTimeout = 4 * time.Second

// Settings are the file and environment settings of a Client. Environment
// variables override the file.
//
//	# trigger.yaml
//	name: greeter
//	enabled: true
//	metrics: true
//	tracing: false
type Settings struct {
	Name    string `yaml:"name" json:"name" env:"TRIGGER_NAME,overwrite"`
	Enabled bool   `yaml:"enabled" json:"enabled" env:"TRIGGER_ENABLED,overwrite"`
	Metrics bool   `yaml:"metrics" json:"metrics" env:"TRIGGER_METRICS,overwrite"`
	Tracing bool   `yaml:"tracing" json:"tracing" env:"TRIGGER_TRACING,overwrite"`
}

// DefaultSettings returns the settings of a Client built with no options.
func DefaultSettings() Settings {
	return Settings{Enabled: true}
}

// LoadSettings decodes path over DefaultSettings, then applies TRIGGER_*
// environment variables. An empty path reads the environment alone.
func LoadSettings(ctx context.Context, path string) (Settings, error) {
	settings := DefaultSettings()
	if path != "" {
		if err := config.DecodeFile(path, &settings); err != nil {
			return Settings{}, err
		}
	}
	if err := envconfig.Process(ctx, &settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Options maps the settings to client options.
func (s Settings) Options() []Option {
	return []Option{
		WithName(s.Name),
		WithEnabled(s.Enabled),
		WithMetrics(s.Metrics),
		WithTracing(s.Tracing),
	}
}

// OptionsFromConfig maps an already loaded map of settings to client
// options. Missing keys leave the defaults in place.
func OptionsFromConfig(cfg config.Config) []Option {
	var opts []Option
	if cfg.Has(ConfigKeyName) {
		opts = append(opts, WithName(cfg.String(ConfigKeyName, "")))
	}
	if cfg.Has(ConfigKeyEnabled) {
		opts = append(opts, WithEnabled(cfg.Bool(ConfigKeyEnabled, true)))
	}
	if cfg.Has(ConfigKeyMetrics) {
		opts = append(opts, WithMetrics(cfg.Bool(ConfigKeyMetrics, false)))
	}
	if cfg.Has(ConfigKeyTracing) {
		opts = append(opts, WithTracing(cfg.Bool(ConfigKeyTracing, false)))
	}
	return opts
}

// NewFromFile loads settings with LoadSettings and creates a Client. Options
// given here are applied last, so they win over the file and the environment.
func NewFromFile(path string, opts ...Option) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), settingsTimeout)
	defer cancel()

	settings, err := LoadSettings(ctx, path)
	if err != nil {
		return nil, err
	}
	return New(append(settings.Options(), opts...)...), nil
}
