// Package tui implements the terminal notification center.
package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/matheuscp10/unisports-match-play/internal/core/logging"
	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/styles"
	"github.com/matheuscp10/unisports-match-play/internal/share"
	"github.com/matheuscp10/unisports-match-play/internal/tui/components"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateDetail
	stateComposing
	stateConfirming
	stateShowingHelp
)

// Sharer delivers share payloads for shareable notices.
type Sharer interface {
	Share(n notify.Notice) (share.Result, error)
}

// Options configures the TUI behavior.
type Options struct {
	Store     *notify.Store // required
	Sharer    Sharer        // nil disables sharing
	MaxToasts int
	Mute      []string
	// Now overrides the store clock used for relative times.
	Now func() time.Time
}

// Model is the bubbletea model of the notification center. It mounts a store
// subscriber on construction and removes it in Close.
type Model struct {
	store  *notify.Store
	sharer Sharer
	now    func() time.Time
	log    zerolog.Logger

	buffer    *ChangeBuffer
	token     notify.Token
	toasts    *ToastController
	toastView *ToastView
	muter     Muter
	keys      KeyMap
	help      help.Model
	state     UIState
	notices   []notify.Notice
	cursor    int
	offset    int
	detail    *DetailView
	compose   *composeForm
	confirm   components.ConfirmModal
	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

// New creates the model and subscribes it to the store.
func New(opts Options) *Model {
	now := opts.Now
	if now == nil {
		now = opts.Store.Now
	}

	toasts := NewToastController(opts.MaxToasts)
	m := &Model{
		store:     opts.Store,
		sharer:    opts.Sharer,
		now:       now,
		log:       logging.Component("tui"),
		buffer:    NewChangeBuffer(),
		toasts:    toasts,
		toastView: NewToastView(toasts),
		muter:     NewMuter(opts.Mute),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		width:     80,
		height:    24,
	}

	m.token = m.store.Subscribe(m.buffer.Push)
	m.refresh()
	return m
}

// Close unsubscribes the model from the store.
func (m *Model) Close() {
	m.store.Unsubscribe(m.token)
}

// SettingsMsg carries display settings reloaded from the config file. It is
// applied on the program goroutine, so theme changes never race a render.
type SettingsMsg struct {
	Theme     string
	MaxToasts int
	Mute      []string
}

func (m *Model) Init() tea.Cmd {
	return m.buffer.WaitForSignal()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
		if m.detail != nil {
			m.detail = NewDetailView(m.detail.notice, m.now(), m.width, m.height)
		}
		return m, nil

	case drainChangesMsg:
		return m, m.applyChanges()

	case SettingsMsg:
		m.muter = NewMuter(msg.Mute)
		m.toasts.SetMax(msg.MaxToasts)
		if palette, ok := styles.GetPalette(msg.Theme); ok {
			styles.SetTheme(palette)
		}
		m.setStatus("settings reloaded")
		return m, nil

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.HasToasts() {
			return m, scheduleToastTick()
		}
		m.toasts.SetTicking(false)
		return m, nil
	}

	switch m.state {
	case stateComposing:
		return m, m.updateCompose(msg)
	case stateConfirming:
		return m, m.updateConfirm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.state == stateDetail {
			return m, m.detail.Update(msg)
		}
		return m, nil
	}

	switch m.state {
	case stateShowingHelp:
		if key.Matches(keyMsg, m.keys.Help, m.keys.Back) {
			m.state = stateNormal
		}
		return m, nil
	case stateDetail:
		return m, m.updateDetail(keyMsg)
	default:
		return m, m.updateNormal(keyMsg)
	}
}

func (m *Model) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Open):
		if n, ok := m.selected(); ok {
			m.store.MarkRead(n.ID)
			m.detail = NewDetailView(n, m.now(), m.width, m.height)
			m.state = stateDetail
		}
	case key.Matches(msg, m.keys.MarkRead):
		if n, ok := m.selected(); ok {
			m.store.MarkRead(n.ID)
		}
	case key.Matches(msg, m.keys.Remove):
		if n, ok := m.selected(); ok {
			m.removeNotice(n)
		}
	case key.Matches(msg, m.keys.ClearAll):
		if len(m.notices) > 0 {
			m.confirm = components.NewConfirmModal("Clear all notifications?", removalDetail(len(m.notices)))
			m.state = stateConfirming
		}
	case key.Matches(msg, m.keys.Share):
		if n, ok := m.selected(); ok {
			m.shareNotice(n)
		}
	case key.Matches(msg, m.keys.Compose):
		m.compose = newComposeForm(m.width)
		m.state = stateComposing
		return m.compose.form.Init()
	case key.Matches(msg, m.keys.DismissToast):
		m.toasts.Dismiss()
	case key.Matches(msg, m.keys.Help):
		m.state = stateShowingHelp
	}
	return nil
}

func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeDetail()
		return nil
	case key.Matches(msg, m.keys.Share):
		if n, ok := m.store.Get(m.detail.NoticeID()); ok {
			m.shareNotice(n)
		}
		return nil
	case key.Matches(msg, m.keys.Remove):
		if n, ok := m.store.Get(m.detail.NoticeID()); ok {
			m.closeDetail()
			m.removeNotice(n)
		}
		return nil
	}
	return m.detail.Update(msg)
}

func removalDetail(count int) string {
	if count == 1 {
		return "1 notice will be removed"
	}
	return fmt.Sprintf("%d notices will be removed", count)
}

func (m *Model) updateConfirm(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)

	switch {
	case m.confirm.Confirmed():
		m.state = stateNormal
		m.clearAll()
	case m.confirm.Cancelled():
		m.state = stateNormal
	}
	return cmd
}

func (m *Model) updateCompose(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.compose = nil
		m.state = stateNormal
		return nil
	}

	model, cmd := m.compose.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.compose.form = f
	}

	switch m.compose.form.State {
	case huh.StateCompleted:
		draft := m.compose.Draft()
		m.compose = nil
		m.state = stateNormal
		if _, err := m.store.Publish(draft); err != nil {
			m.setError(fmt.Errorf("publish: %w", err))
		} else {
			m.setStatus("published " + draft.Title)
		}
		return nil
	case huh.StateAborted:
		m.compose = nil
		m.state = stateNormal
		return nil
	}
	return cmd
}

// removeNotice removes n and raises the confirmation toast.
func (m *Model) removeNotice(n notify.Notice) {
	if !m.store.Remove(n.ID) {
		return
	}
	m.publishFeedback(notify.Toast("Notification Cleared 🗑️", fmt.Sprintf("%q has been removed", n.Title)))
}

func (m *Model) clearAll() {
	m.store.ClearAll()
	m.publishFeedback(notify.Toast("All Cleared! ✨", "All notifications have been cleared"))
}

func (m *Model) publishFeedback(d notify.Draft) {
	if _, err := m.store.Publish(d); err != nil {
		m.log.Warn().Err(err).Str("title", d.Title).Msg("feedback toast not published")
	}
}

func (m *Model) shareNotice(n notify.Notice) {
	if m.sharer == nil {
		m.setError(errors.New("sharing is disabled"))
		return
	}

	res, err := m.sharer.Share(n)
	switch {
	case errors.Is(err, share.ErrNotShareable):
		m.setError(errors.New("this notice cannot be shared"))
	case err != nil:
		m.setError(err)
	case res.Copied:
		m.setStatus("copied " + res.Payload.URL)
	default:
		m.setStatus("clipboard unavailable: " + res.Payload.URL)
	}
}

// applyChanges drains the buffered changes into toasts and re-reads the
// store. It always re-arms the buffer signal.
func (m *Model) applyChanges() tea.Cmd {
	for _, c := range m.buffer.Drain() {
		switch c.Kind {
		case notify.ChangePublished:
			if !m.muter.Muted(c.Notice.Category) {
				m.toasts.Push(c.Notice)
			}
		case notify.ChangeRemoved, notify.ChangeExpired:
			m.toasts.Drop(c.ID)
		case notify.ChangeCleared:
			m.toasts.DismissAll()
		}
	}
	m.refresh()

	cmds := []tea.Cmd{m.buffer.WaitForSignal()}
	if m.toasts.HasToasts() && !m.toasts.Ticking() {
		m.toasts.SetTicking(true)
		cmds = append(cmds, scheduleToastTick())
	}
	return tea.Batch(cmds...)
}

func (m *Model) refresh() {
	m.notices = m.store.Snapshot()
	if m.cursor >= len(m.notices) {
		m.cursor = max(len(m.notices)-1, 0)
	}
	m.clampOffset()

	if m.state == stateDetail {
		if _, ok := m.store.Get(m.detail.NoticeID()); !ok {
			m.closeDetail()
			m.setStatus("notice is gone")
		}
	}
}

func (m *Model) closeDetail() {
	m.detail = nil
	m.state = stateNormal
}

func (m *Model) selected() (notify.Notice, bool) {
	if m.cursor < 0 || m.cursor >= len(m.notices) {
		return notify.Notice{}, false
	}
	return m.notices[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	if len(m.notices) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.notices)-1)
	m.clampOffset()
}

func (m *Model) clampOffset() {
	visible := m.visibleItems()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	m.offset = max(m.offset, 0)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// UnreadCount returns the badge value currently shown.
func (m *Model) UnreadCount() int {
	return notify.CountUnread(m.notices)
}
