// Package notify implements the notification center shared by every part of
// unisports: an ordered store of notices, a registry of observers that learn
// about each mutation synchronously, and an expiry scheduler that removes
// transient notices after a fixed delay.
package notify

import (
	"strings"
	"time"
)

// Category is the kind of a notice. It drives the icon shown by consumers and
// the default expiry delay of transient notices.
type Category string

const (
	CategoryMatch   Category = "match"
	CategoryBooking Category = "booking"
	CategoryGeneral Category = "general"
)

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{CategoryMatch, CategoryBooking, CategoryGeneral}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryMatch, CategoryBooking, CategoryGeneral:
		return true
	}
	return false
}

// ParseCategory converts a user supplied string (case-insensitive) into a
// Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", &InvalidNoticeError{Field: "category", Reason: "unknown category " + quote(s)}
	}
	return c, nil
}

// Icon returns the glyph shown next to notices of this category.
func (c Category) Icon() string {
	switch c {
	case CategoryMatch:
		return "👥"
	case CategoryBooking:
		return "📍"
	case CategoryGeneral:
		return "🏆"
	default:
		return "🔔"
	}
}

// Label returns a human readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryMatch:
		return "Match"
	case CategoryBooking:
		return "Booking"
	case CategoryGeneral:
		return "General"
	default:
		return "Notice"
	}
}

// Notice is a single unit of information held by the Store. Notices are
// immutable once published except for the Read flag, which only the Store
// flips.
type Notice struct {
	ID        string    `json:"id"`
	Category  Category  `json:"category"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
	Transient bool      `json:"transient"`
	Shareable bool      `json:"shareable"`
}

// Draft carries the producer supplied fields of a notice. The Store assigns
// the id, the creation time and the read flag.
type Draft struct {
	Category  Category `json:"category"`
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Transient bool     `json:"transient,omitempty"`
	Shareable bool     `json:"shareable,omitempty"`
}

// Toast returns the draft for an ephemeral general notice.
func Toast(title, body string) Draft {
	return Draft{
		Category:  CategoryGeneral,
		Title:     title,
		Body:      body,
		Transient: true,
	}
}

// Validate checks the producer supplied fields.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &InvalidNoticeError{Field: "title", Reason: "must not be empty"}
	}
	if !d.Category.Valid() {
		return &InvalidNoticeError{Field: "category", Reason: "unknown category " + quote(string(d.Category))}
	}
	return nil
}

func quote(s string) string {
	return `"` + s + `"`
}
