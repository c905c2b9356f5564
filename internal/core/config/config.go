// Package config handles configuration loading and validation for unisports.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/styles"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "UNISPORTS_"

// Config holds the application configuration.
type Config struct {
	Expiry        ExpiryConfig   `yaml:"expiry"        envPrefix:"EXPIRY_"`
	Seed          bool           `yaml:"seed"          env:"SEED"`
	Share         ShareConfig    `yaml:"share"         envPrefix:"SHARE_"`
	TUI           TUIConfig      `yaml:"tui"           envPrefix:"TUI_"`
	Announcements []Announcement `yaml:"announcements"`
	Metrics       MetricsConfig  `yaml:"metrics"       envPrefix:"METRICS_"`
}

// ExpiryConfig controls how long transient notices live.
type ExpiryConfig struct {
	Default time.Duration `yaml:"default" env:"DEFAULT"`
	// Categories overrides the default per notice category.
	Categories map[string]time.Duration `yaml:"categories"`
}

// ShareConfig holds settings for share payloads.
type ShareConfig struct {
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
}

// TUIConfig holds notification center display settings.
type TUIConfig struct {
	Theme     string `yaml:"theme"      env:"THEME"`
	MaxToasts int    `yaml:"max_toasts" env:"MAX_TOASTS"`
	// Mute lists glob patterns over category names. Muted categories are not
	// shown as toasts but stay in the notice list.
	Mute []string `yaml:"mute" env:"MUTE" envSeparator:","`
}

// Announcement is a notice published on a cron schedule.
type Announcement struct {
	Schedule  string `yaml:"schedule"`
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	Category  string `yaml:"category"`
	Transient bool   `yaml:"transient"`
	Shareable bool   `yaml:"shareable"`
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"ENABLED"`
	Addr    string `yaml:"addr"    env:"ADDR"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Expiry: ExpiryConfig{
			Default:    notify.DefaultExpiry,
			Categories: map[string]time.Duration{},
		},
		Seed: true,
		Share: ShareConfig{
			BaseURL: "https://unisports.app",
		},
		TUI: TUIConfig{
			Theme:     styles.DefaultTheme,
			MaxToasts: 5,
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9464",
		},
	}
}

// Load reads configuration from the given path, applies UNISPORTS_*
// environment overrides and validates the result. A missing file is not an
// error; defaults are used instead.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Expiry.Default == 0 {
		c.Expiry.Default = defaults.Expiry.Default
	}
	if c.Expiry.Categories == nil {
		c.Expiry.Categories = map[string]time.Duration{}
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.MaxToasts == 0 {
		c.TUI.MaxToasts = defaults.TUI.MaxToasts
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = defaults.Metrics.Addr
	}
	for i := range c.Announcements {
		if c.Announcements[i].Category == "" {
			c.Announcements[i].Category = string(notify.CategoryGeneral)
		}
	}
}

// StoreOptions converts the expiry settings into notify.Store options.
// Call it on a validated config; unknown categories are skipped.
func (e ExpiryConfig) StoreOptions() []notify.Option {
	opts := []notify.Option{notify.WithExpiry(e.Default)}
	for name, d := range e.Categories {
		c, err := notify.ParseCategory(name)
		if err != nil {
			continue
		}
		opts = append(opts, notify.WithCategoryExpiry(c, d))
	}
	return opts
}
