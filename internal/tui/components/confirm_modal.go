package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/matheuscp10/unisports-match-play/internal/core/styles"
)

type confirmResult int

const (
	confirmPending confirmResult = iota
	confirmAccepted
	confirmRejected
)

var (
	confirmYes = key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "yes"))
	confirmNo  = key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no"))
)

// ConfirmModal asks before a destructive action such as clearing every
// notice. It resolves once; input after the answer is ignored.
type ConfirmModal struct {
	message string
	detail  string
	result  confirmResult
}

// NewConfirmModal creates a confirmation for message. detail is an optional
// muted line describing what will be lost.
func NewConfirmModal(message, detail string) ConfirmModal {
	return ConfirmModal{message: message, detail: detail}
}

// Update records the answer from a yes or no key.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.result != confirmPending {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, confirmYes):
		m.result = confirmAccepted
	case key.Matches(keyMsg, confirmNo):
		m.result = confirmRejected
	}
	return m, nil
}

func (m ConfirmModal) View() string {
	lines := []string{styles.ConfirmMessageStyle.Render(m.message)}
	if m.detail != "" {
		lines = append(lines, styles.TextMutedStyle.Render(m.detail))
	}
	lines = append(lines, "", confirmHint(confirmYes)+"   "+confirmHint(confirmNo))
	return strings.Join(lines, "\n")
}

func confirmHint(b key.Binding) string {
	h := b.Help()
	return styles.TextPrimaryBoldStyle.Render("["+h.Key+"]") + " " + styles.TextForegroundStyle.Render(h.Desc)
}

// Confirmed reports whether the user accepted.
func (m ConfirmModal) Confirmed() bool {
	return m.result == confirmAccepted
}

// Cancelled reports whether the user declined.
func (m ConfirmModal) Cancelled() bool {
	return m.result == confirmRejected
}
