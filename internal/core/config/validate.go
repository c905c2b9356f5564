package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/robfig/cron/v3"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/styles"
	"github.com/matheuscp10/unisports-match-play/internal/core/validate"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// Validate checks that the configuration is valid. Errors are reported as
// criterio field errors keyed by their yaml path.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("expiry.default", c.Expiry.Default, positiveDuration),
		c.validateCategoryExpiry(),
		criterio.Run("tui.theme", c.TUI.Theme, knownTheme),
		criterio.Run("tui.max_toasts", c.TUI.MaxToasts, atLeastOne),
		c.validateMute(),
		criterio.Run("share.base_url", c.Share.BaseURL, httpURL),
		c.validateAnnouncements(),
		c.validateMetrics(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for i, a := range c.Announcements {
		if a.Transient && a.Shareable {
			warnings = append(warnings, ValidationWarning{
				Category: "Announcements",
				Item:     fmt.Sprintf("announcement %d", i),
				Message:  "transient announcement is shareable but disappears before most users can share it",
			})
		}
	}

	for _, pattern := range c.TUI.Mute {
		muted := 0
		for _, cat := range notify.Categories() {
			if ok, _ := doublestar.Match(pattern, string(cat)); ok {
				muted++
			}
		}
		if muted == len(notify.Categories()) {
			warnings = append(warnings, ValidationWarning{
				Category: "TUI",
				Item:     pattern,
				Message:  "pattern mutes every category; no toasts will be shown",
			})
		}
	}

	return warnings
}

func (c *Config) validateCategoryExpiry() error {
	var errs criterio.FieldErrorsBuilder
	for name, d := range c.Expiry.Categories {
		field := fmt.Sprintf("expiry.categories[%q]", name)
		if _, err := notify.ParseCategory(name); err != nil {
			errs = errs.Append(field, fmt.Errorf("unknown category %q", name))
			continue
		}
		if err := positiveDuration(d); err != nil {
			errs = errs.Append(field, err)
		}
	}
	return errs.ToError()
}

func (c *Config) validateMute() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.TUI.Mute {
		if err := validate.MutePattern(pattern); err != nil {
			errs = errs.Append(fmt.Sprintf("tui.mute[%d]", i), err)
		}
	}
	return errs.ToError()
}

func (c *Config) validateAnnouncements() error {
	var errs criterio.FieldErrorsBuilder
	for i, a := range c.Announcements {
		prefix := fmt.Sprintf("announcements[%d]", i)

		if _, err := cron.ParseStandard(a.Schedule); err != nil {
			errs = errs.Append(prefix+".schedule", fmt.Errorf("invalid schedule %q: %w", a.Schedule, err))
		}

		draft := notify.Draft{Category: notify.Category(a.Category), Title: a.Title}
		if err := draft.Validate(); err != nil {
			errs = errs.Append(prefix, err)
		}
	}
	return errs.ToError()
}

func (c *Config) validateMetrics() error {
	if !c.Metrics.Enabled {
		return nil
	}
	return criterio.Run("metrics.addr", c.Metrics.Addr, hostPort)
}

func positiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

func atLeastOne(n int) error {
	if n < 1 {
		return fmt.Errorf("must be at least 1")
	}
	return nil
}

func httpURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must be an http(s) url")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func hostPort(s string) error {
	if _, _, err := net.SplitHostPort(s); err != nil {
		return fmt.Errorf("invalid address %q: %w", s, err)
	}
	return nil
}
