package tui

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify/notifytest"
	"github.com/matheuscp10/unisports-match-play/internal/core/styles"
	"github.com/matheuscp10/unisports-match-play/internal/share"
	"github.com/matheuscp10/unisports-match-play/pkg/tuitest"
)

type fakeSharer struct {
	shared []notify.Notice
	err    error
}

func (f *fakeSharer) Share(n notify.Notice) (share.Result, error) {
	if f.err != nil {
		return share.Result{}, f.err
	}
	f.shared = append(f.shared, n)
	return share.Result{Payload: share.Payload{Title: n.Title, URL: "https://example.test/?notice=" + n.ID}, Copied: true}, nil
}

func newTestModel(t *testing.T, opts Options, seeds ...notify.Seed) (*Model, *notify.Store, *notifytest.Clock) {
	t.Helper()

	clock := notifytest.NewClock(time.Time{})
	var next int
	store := notify.New(
		notify.WithClock(clock),
		notify.WithIDGenerator(func() string {
			next++
			return fmt.Sprintf("n%d", next)
		}),
		notify.WithSeed(seeds...),
	)
	t.Cleanup(store.Close)

	opts.Store = store
	opts.Now = clock.Now
	m := New(opts)
	t.Cleanup(m.Close)
	return m, store, clock
}

func seed(category notify.Category, title string, age time.Duration) notify.Seed {
	return notify.Seed{Draft: notify.Draft{Category: category, Title: title, Body: title + " body"}, Age: age}
}

// drain delivers buffered store changes to the model.
func drain(m *Model) {
	m.Update(drainChangesMsg{})
}

func TestModel_New_loads_snapshot(t *testing.T) {
	m, store, _ := newTestModel(t, Options{},
		seed(notify.CategoryMatch, "Match Confirmed", time.Minute),
		seed(notify.CategoryBooking, "Field Booked", time.Hour),
	)

	require.Len(t, m.notices, 2)
	assert.Equal(t, "Match Confirmed", m.notices[0].Title)
	assert.Equal(t, 2, m.UnreadCount())
	assert.Equal(t, 1, store.Subscribers())

	m.Close()
	assert.Equal(t, 0, store.Subscribers())
}

func TestModel_published_notice_raises_toast(t *testing.T) {
	m, store, _ := newTestModel(t, Options{})

	_, err := store.Publish(notify.Draft{Category: notify.CategoryMatch, Title: "Match Confirmed"})
	require.NoError(t, err)
	drain(m)

	assert.Len(t, m.notices, 1)
	require.True(t, m.toasts.HasToasts())
	assert.Equal(t, "Match Confirmed", m.toasts.Toasts()[0].notice.Title)
	assert.True(t, m.toasts.Ticking())
}

func TestModel_muted_category_skips_toast(t *testing.T) {
	m, store, _ := newTestModel(t, Options{Mute: []string{"book*"}})

	_, err := store.Publish(notify.Draft{Category: notify.CategoryBooking, Title: "Field Booked"})
	require.NoError(t, err)
	drain(m)

	assert.Len(t, m.notices, 1)
	assert.False(t, m.toasts.HasToasts())
}

func TestModel_settings_reload(t *testing.T) {
	m, store, _ := newTestModel(t, Options{MaxToasts: 5})

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := store.Publish(notify.Draft{Category: notify.CategoryMatch, Title: title})
		require.NoError(t, err)
	}
	drain(m)
	require.Len(t, m.toasts.toasts, 3)

	m.Update(SettingsMsg{Theme: styles.DefaultTheme, MaxToasts: 1, Mute: []string{"match"}})
	require.Len(t, m.toasts.toasts, 1)
	assert.Equal(t, "Three", m.toasts.toasts[0].notice.Title)
	assert.Equal(t, "settings reloaded", m.status)

	_, err := store.Publish(notify.Draft{Category: notify.CategoryMatch, Title: "Four"})
	require.NoError(t, err)
	drain(m)
	assert.Equal(t, "Three", m.toasts.toasts[0].notice.Title, "muted category raises no toast")
}

func TestModel_expired_notice_drops_toast(t *testing.T) {
	m, store, clock := newTestModel(t, Options{})

	_, err := store.Publish(notify.Toast("Payment Successful", ""))
	require.NoError(t, err)
	drain(m)
	require.True(t, m.toasts.HasToasts())

	clock.Advance(notify.DefaultExpiry)
	drain(m)

	assert.Empty(t, m.notices)
	assert.False(t, m.toasts.HasToasts())
}

func TestModel_cursor_navigation(t *testing.T) {
	m, _, _ := newTestModel(t, Options{},
		seed(notify.CategoryMatch, "first", time.Minute),
		seed(notify.CategoryMatch, "second", 2*time.Minute),
		seed(notify.CategoryMatch, "third", 3*time.Minute),
	)

	m.Update(tuitest.Keys("j"))
	m.Update(tuitest.Keys("j"))
	m.Update(tuitest.Keys("j"))
	assert.Equal(t, 2, m.cursor)

	m.Update(tuitest.Keys("k"))
	assert.Equal(t, 1, m.cursor)
}

func TestModel_mark_read(t *testing.T) {
	m, store, _ := newTestModel(t, Options{},
		seed(notify.CategoryMatch, "first", time.Minute),
		seed(notify.CategoryMatch, "second", 2*time.Minute),
	)

	m.Update(tuitest.Keys("r"))
	drain(m)

	assert.Equal(t, 1, store.UnreadCount())
	assert.Equal(t, 1, m.UnreadCount())
	assert.True(t, m.notices[0].Read)
}

func TestModel_remove_publishes_feedback_toast(t *testing.T) {
	m, store, _ := newTestModel(t, Options{},
		seed(notify.CategoryMatch, "Match Confirmed", time.Minute),
	)

	m.Update(tuitest.Keys("x"))
	drain(m)

	require.Len(t, m.notices, 1)
	assert.Equal(t, "Notification Cleared 🗑️", m.notices[0].Title)
	assert.Equal(t, `"Match Confirmed" has been removed`, m.notices[0].Body)
	assert.True(t, m.notices[0].Transient)
	assert.Equal(t, 1, store.Len())
}

func TestModel_clear_all_requires_confirmation(t *testing.T) {
	m, store, _ := newTestModel(t, Options{},
		seed(notify.CategoryMatch, "first", time.Minute),
		seed(notify.CategoryBooking, "second", 2*time.Minute),
	)

	m.Update(tuitest.Keys("C"))
	assert.Equal(t, stateConfirming, m.state)
	assert.Contains(t, tuitest.StripANSI(m.confirm.View()), "2 notices will be removed")

	m.Update(tuitest.Keys("n"))
	assert.Equal(t, stateNormal, m.state)
	assert.Equal(t, 2, store.Len())

	m.Update(tuitest.Keys("C"))
	m.Update(tuitest.Keys("y"))
	drain(m)

	assert.Equal(t, stateNormal, m.state)
	require.Len(t, m.notices, 1)
	assert.Equal(t, "All Cleared! ✨", m.notices[0].Title)
}

func TestModel_clear_all_ignored_when_empty(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})

	m.Update(tuitest.Keys("C"))

	assert.Equal(t, stateNormal, m.state)
}

func TestModel_open_detail_marks_read(t *testing.T) {
	m, store, _ := newTestModel(t, Options{},
		seed(notify.CategoryMatch, "Match Confirmed", time.Minute),
	)

	m.Update(tuitest.KeyEnter())
	drain(m)

	require.Equal(t, stateDetail, m.state)
	assert.Equal(t, "n1", m.detail.NoticeID())
	assert.Equal(t, 0, store.UnreadCount())

	m.Update(tuitest.KeyEsc())
	assert.Equal(t, stateNormal, m.state)
	assert.Nil(t, m.detail)
}

func TestModel_detail_closes_when_notice_disappears(t *testing.T) {
	m, store, _ := newTestModel(t, Options{},
		seed(notify.CategoryMatch, "Match Confirmed", time.Minute),
	)

	m.Update(tuitest.KeyEnter())
	drain(m)
	require.Equal(t, stateDetail, m.state)

	store.Remove("n1")
	drain(m)

	assert.Equal(t, stateNormal, m.state)
	assert.Equal(t, "notice is gone", m.status)
}

func TestModel_share(t *testing.T) {
	shareable := seed(notify.CategoryMatch, "Match Confirmed", time.Minute)
	shareable.Shareable = true

	t.Run("copies shareable notice", func(t *testing.T) {
		sharer := &fakeSharer{}
		m, _, _ := newTestModel(t, Options{Sharer: sharer}, shareable)

		m.Update(tuitest.Keys("s"))

		require.Len(t, sharer.shared, 1)
		assert.False(t, m.statusErr)
		assert.Contains(t, m.status, "?notice=n1")
	})

	t.Run("reports not shareable", func(t *testing.T) {
		sharer := &fakeSharer{err: share.ErrNotShareable}
		m, _, _ := newTestModel(t, Options{Sharer: sharer}, shareable)

		m.Update(tuitest.Keys("s"))

		assert.True(t, m.statusErr)
		assert.Equal(t, "this notice cannot be shared", m.status)
	})

	t.Run("disabled without sharer", func(t *testing.T) {
		m, _, _ := newTestModel(t, Options{}, shareable)

		m.Update(tuitest.Keys("s"))

		assert.True(t, m.statusErr)
	})
}

func TestModel_toast_tick_stops_when_empty(t *testing.T) {
	m, store, _ := newTestModel(t, Options{})

	_, err := store.Publish(notify.Toast("Payment Successful", ""))
	require.NoError(t, err)
	drain(m)

	m.toasts.Tick(defaultToastTTL)
	_, cmd := m.Update(toastTickMsg{})

	assert.Nil(t, cmd)
	assert.False(t, m.toasts.Ticking())
}

func TestModel_escape_dismisses_toast(t *testing.T) {
	m, store, _ := newTestModel(t, Options{})

	_, err := store.Publish(notify.Toast("Payment Successful", ""))
	require.NoError(t, err)
	drain(m)

	m.Update(tuitest.KeyEsc())

	assert.False(t, m.toasts.HasToasts())
}

func TestModel_help_toggle(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})

	m.Update(tuitest.Keys("?"))
	assert.Equal(t, stateShowingHelp, m.state)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m.Update(tuitest.Keys("?"))
	assert.Equal(t, stateNormal, m.state)
}

func TestModel_compose_escape_aborts(t *testing.T) {
	m, store, _ := newTestModel(t, Options{})

	m.Update(tuitest.Keys("n"))
	require.Equal(t, stateComposing, m.state)

	m.Update(tuitest.KeyEsc())

	assert.Equal(t, stateNormal, m.state)
	assert.Equal(t, 0, store.Len())
}

func TestModel_View(t *testing.T) {
	m, _, _ := newTestModel(t, Options{},
		seed(notify.CategoryMatch, "Match Confirmed", 2*time.Minute),
	)
	m.Update(tuitest.WindowSize(100, 30))

	view := tuitest.StripANSI(m.View())

	assert.Contains(t, view, "Notifications")
	assert.Contains(t, view, "Match Confirmed")
	assert.Contains(t, view, "2m ago")
}

func TestModel_View_empty(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})

	assert.Contains(t, m.View(), "No notifications yet")
}

func TestModel_quit(t *testing.T) {
	m, _, _ := newTestModel(t, Options{})

	_, cmd := m.Update(tuitest.Keys("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}
