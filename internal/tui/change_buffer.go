package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

type drainChangesMsg struct{}

// ChangeBuffer buffers store changes and emits coalesced drain signals. Store
// subscribers run on whichever goroutine mutated the store, so changes are
// handed to the bubbletea loop through the buffer instead of touching the
// model directly.
type ChangeBuffer struct {
	mu      sync.Mutex
	changes []notify.Change
	signal  chan struct{}
}

// NewChangeBuffer constructs a buffer for async change delivery.
func NewChangeBuffer() *ChangeBuffer {
	return &ChangeBuffer{
		changes: make([]notify.Change, 0),
		signal:  make(chan struct{}, 1),
	}
}

// Push appends a change and emits a non-blocking drain signal. It matches
// notify.Subscriber.
func (b *ChangeBuffer) Push(c notify.Change) {
	b.mu.Lock()
	b.changes = append(b.changes, c)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered changes and clears the buffer.
func (b *ChangeBuffer) Drain() []notify.Change {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.changes) == 0 {
		return nil
	}

	out := make([]notify.Change, len(b.changes))
	copy(out, b.changes)
	b.changes = b.changes[:0]
	return out
}

// WaitForSignal blocks until there are changes ready to drain.
func (b *ChangeBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainChangesMsg{}
	}
}
