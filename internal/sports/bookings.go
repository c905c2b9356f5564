package sports

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

// DefaultCancelDelay is the simulated backend latency of a cancellation.
const DefaultCancelDelay = 1500 * time.Millisecond

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrCancelPending   = errors.New("cancellation already in progress")
)

// Kind distinguishes field reservations from scheduled matches.
type Kind string

const (
	KindField Kind = "field booking"
	KindMatch Kind = "match"
)

// Booking is one entry of the user's bookings list.
type Booking struct {
	ID       int    `json:"id"`
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	Sport    string `json:"sport"`
	When     string `json:"when"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

// Bookings is an in-memory stand in for the bookings backend. Cancelling a
// booking raises a toast and then removes it; when the toast cannot be
// published the booking is kept.
type Bookings struct {
	mu         sync.Mutex
	items      []Booking
	cancelling map[int]bool

	producers *Producers
	delay     time.Duration
}

// NewBookings creates a bookings service holding items. A negative delay is
// treated as zero.
func NewBookings(p *Producers, delay time.Duration, items []Booking) *Bookings {
	return &Bookings{
		items:      slices.Clone(items),
		cancelling: map[int]bool{},
		producers:  p,
		delay:      max(delay, 0),
	}
}

// List returns the current bookings.
func (b *Bookings) List() []Booking {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.items)
}

// Cancelling reports whether a cancellation of id is in flight.
func (b *Bookings) Cancelling(id int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cancelling[id]
}

// Cancel waits for the simulated backend, publishes the cancellation toast
// and removes the booking. If ctx is done first nothing changes. If the toast
// cannot be published the booking is kept and the error returned.
func (b *Bookings) Cancel(ctx context.Context, id int) (notify.Notice, error) {
	b.mu.Lock()
	if slices.IndexFunc(b.items, func(bk Booking) bool { return bk.ID == id }) < 0 {
		b.mu.Unlock()
		return notify.Notice{}, fmt.Errorf("cancel %d: %w", id, ErrBookingNotFound)
	}
	if b.cancelling[id] {
		b.mu.Unlock()
		return notify.Notice{}, fmt.Errorf("cancel %d: %w", id, ErrCancelPending)
	}
	b.cancelling[id] = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.cancelling, id)
		b.mu.Unlock()
	}()

	if b.delay > 0 {
		t := time.NewTimer(b.delay)
		defer t.Stop()

		select {
		case <-ctx.Done():
			return notify.Notice{}, ctx.Err()
		case <-t.C:
		}
	}

	bk, ok := b.find(id)
	if !ok {
		return notify.Notice{}, fmt.Errorf("cancel %d: %w", id, ErrBookingNotFound)
	}

	// the booking stays listed until its notice is out
	n, err := b.producers.BookingCancelled(ctx, bk.Kind, bk.Name)
	if err != nil {
		return notify.Notice{}, fmt.Errorf("cancel %d: %w", id, err)
	}

	b.mu.Lock()
	b.items = slices.DeleteFunc(b.items, func(item Booking) bool { return item.ID == id })
	b.mu.Unlock()

	return n, nil
}

func (b *Bookings) find(id int) (Booking, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := slices.IndexFunc(b.items, func(bk Booking) bool { return bk.ID == id })
	if idx < 0 {
		return Booking{}, false
	}
	return b.items[idx], true
}

// SampleBookings returns the bookings shown on a fresh dashboard.
func SampleBookings() []Booking {
	return []Booking{
		{ID: 1, Kind: KindField, Name: "MIT Recreation Center", Sport: "Basketball", When: "Today 2:00 PM - 4:00 PM", Location: "Cambridge, MA", Status: "Confirmed"},
		{ID: 2, Kind: KindField, Name: "Charles River Fields", Sport: "Soccer", When: "Tomorrow 6:00 PM - 8:00 PM", Location: "Cambridge, MA", Status: "Confirmed"},
		{ID: 3, Kind: KindField, Name: "Harvard Tennis Courts", Sport: "Tennis", When: "Saturday 10:00 AM - 12:00 PM", Location: "Cambridge, MA", Status: "Pending"},
		{ID: 4, Kind: KindMatch, Name: "Sarah Martinez", Sport: "Tennis", When: "Today 3:00 PM", Location: "MIT Tennis Courts", Status: "Confirmed"},
		{ID: 5, Kind: KindMatch, Name: "Stanford Soccer Club", Sport: "Soccer", When: "Saturday 2:00 PM", Location: "Main Field", Status: "Confirmed"},
		{ID: 6, Kind: KindMatch, Name: "David Kim", Sport: "Basketball", When: "Sunday 7:00 PM", Location: "BU Gym", Status: "Pending"},
	}
}
