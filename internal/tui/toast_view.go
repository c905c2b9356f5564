package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuscp10/unisports-match-play/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders toast popups and composites them under the main view.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the toast stack as a single string with toasts stacked
// vertically (oldest at top, newest at bottom).
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}

	return strings.Join(rendered, "\n")
}

func renderToast(t toast) string {
	n := t.notice
	inner := toastWidth - 4 // border + padding

	title := styles.TextForegroundBoldStyle.Render(n.Category.Icon() + " " + n.Title)
	content := title
	if n.Body != "" {
		body := styles.TextMutedStyle.Width(inner).Render(n.Body)
		content = lipgloss.JoinVertical(lipgloss.Left, title, body)
	}

	return styles.ToastStyle(n.Category).Width(toastWidth - 2).Render(content)
}

// Overlay places the toast stack in the lower-right corner, replacing the
// bottom lines of background.
func (v *ToastView) Overlay(background string, width, height int) string {
	toastContent := v.View()
	if toastContent == "" {
		return background
	}

	toastH := lipgloss.Height(toastContent)
	keep := max(height-toastH, 0)

	lines := strings.Split(background, "\n")
	if len(lines) > keep {
		lines = lines[:keep]
	}
	for len(lines) < keep {
		lines = append(lines, "")
	}

	placed := lipgloss.PlaceHorizontal(width, lipgloss.Right, toastContent)
	if keep == 0 {
		return placed
	}
	return strings.Join(lines, "\n") + "\n" + placed
}
