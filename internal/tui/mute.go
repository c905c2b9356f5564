package tui

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

// Muter decides which categories never pop up as toasts. Muted notices
// still appear in the list.
type Muter struct {
	patterns []string
}

// NewMuter creates a Muter from glob patterns over category names.
// Invalid patterns never match.
func NewMuter(patterns []string) Muter {
	return Muter{patterns: patterns}
}

// Muted reports whether c matches any pattern.
func (m Muter) Muted(c notify.Category) bool {
	for _, p := range m.patterns {
		if ok, err := doublestar.Match(p, string(c)); err == nil && ok {
			return true
		}
	}
	return false
}
