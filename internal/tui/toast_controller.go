package tui

import (
	"time"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

type toast struct {
	notice    notify.Notice
	remaining time.Duration
}

// ToastController manages the lifecycle of active toast popups.
// It handles push, eviction, TTL countdown, and dismissal. Toasts mirror
// published notices and are dropped when their notice leaves the store.
type ToastController struct {
	toasts  []toast
	ticking bool
	max     int
	ttl     time.Duration
}

// NewToastController creates a controller showing at most maxToasts popups.
// Values below one fall back to defaultMaxToasts.
func NewToastController(maxToasts int) *ToastController {
	if maxToasts < 1 {
		maxToasts = defaultMaxToasts
	}
	return &ToastController{max: maxToasts, ttl: defaultToastTTL}
}

// SetMax changes the stack limit, evicting the oldest toasts when it shrinks.
func (c *ToastController) SetMax(maxToasts int) {
	if maxToasts < 1 {
		maxToasts = defaultMaxToasts
	}
	c.max = maxToasts
	if len(c.toasts) > c.max {
		c.toasts = c.toasts[len(c.toasts)-c.max:]
	}
}

// Push adds a notice to the toast stack. If the stack exceeds the maximum,
// the oldest toast is evicted.
func (c *ToastController) Push(n notify.Notice) {
	c.toasts = append(c.toasts, toast{
		notice:    n,
		remaining: c.ttl,
	})
	if len(c.toasts) > c.max {
		c.toasts = c.toasts[len(c.toasts)-c.max:]
	}
}

// Drop removes the toast showing notice id, if any.
func (c *ToastController) Drop(id string) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		if t.notice.ID != id {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Tick decrements the remaining TTL on all toasts by d and removes
// any that have expired.
func (c *ToastController) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.remaining -= d
		if t.remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest (bottom-most) toast.
func (c *ToastController) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

// DismissAll removes all active toasts.
func (c *ToastController) DismissAll() {
	c.toasts = c.toasts[:0]
}

// HasToasts returns true if there are any active toasts.
func (c *ToastController) HasToasts() bool {
	return len(c.toasts) > 0
}

// Toasts returns the current active toast slice.
func (c *ToastController) Toasts() []toast {
	return c.toasts
}

// Ticking returns whether the tick timer is currently running.
func (c *ToastController) Ticking() bool {
	return c.ticking
}

// SetTicking sets the tick timer state.
func (c *ToastController) SetTicking(v bool) {
	c.ticking = v
}
