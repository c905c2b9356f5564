package notifytest

import (
	"sync"
	"testing"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

// Recorder subscribes to a Store and keeps every Change it receives. The
// subscription is removed when the test completes.
type Recorder struct {
	mu      sync.Mutex
	changes []notify.Change
}

// NewRecorder subscribes a recorder to store.
func NewRecorder(t testing.TB, store *notify.Store) *Recorder {
	t.Helper()

	r := &Recorder{}
	tok := store.Subscribe(r.record)
	t.Cleanup(func() { store.Unsubscribe(tok) })
	return r
}

func (r *Recorder) record(c notify.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

// Changes returns a copy of all recorded changes.
func (r *Recorder) Changes() []notify.Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Change, len(r.changes))
	copy(out, r.changes)
	return out
}

// Kinds returns the kind of every recorded change in order.
func (r *Recorder) Kinds() []notify.ChangeKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.ChangeKind, 0, len(r.changes))
	for _, c := range r.changes {
		out = append(out, c.Kind)
	}
	return out
}

// Count returns how many changes of kind were recorded.
func (r *Recorder) Count(kind notify.ChangeKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.changes {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// ForID returns the recorded changes that concern the notice id.
func (r *Recorder) ForID(id string) []notify.Change {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []notify.Change
	for _, c := range r.changes {
		if c.ID == id {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears all recorded changes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = nil
}
