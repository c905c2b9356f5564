package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/styles"
	"github.com/matheuscp10/unisports-match-play/internal/tui/components"
)

const (
	headerLines  = 2
	footerLines  = 2
	linesPerItem = 3
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var main string
	switch m.state {
	case stateDetail:
		main = m.detail.View()
	case stateComposing:
		main = m.renderCompose()
	default:
		main = m.renderList()
	}

	switch m.state {
	case stateConfirming:
		main = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
	case stateShowingHelp:
		main = m.helpDialog().Overlay(main, m.width, m.height)
	}

	return m.toastView.Overlay(main, m.width, m.height)
}

func (m *Model) visibleItems() int {
	return max((m.height-headerLines-footerLines)/linesPerItem, 1)
}

func (m *Model) renderHeader() string {
	title := styles.HeaderStyle.Render(styles.IconBell + " Notifications")
	unread := m.UnreadCount()
	if unread == 0 {
		return title
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", styles.BadgeStyle.Render(fmt.Sprintf("%d", unread)))
}

func (m *Model) renderList() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if len(m.notices) == 0 {
		empty := styles.EmptyStateStyle.Render("No notifications yet")
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, empty))
		b.WriteString("\n")
	} else {
		now := m.now()
		end := min(m.offset+m.visibleItems(), len(m.notices))
		for i := m.offset; i < end; i++ {
			b.WriteString(m.renderRow(m.notices[i], i == m.cursor, now))
			b.WriteString("\n")
		}
	}

	body := b.String()
	used := lipgloss.Height(body)
	if pad := m.height - footerLines - used; pad > 0 {
		body += strings.Repeat("\n", pad)
	}

	return body + m.renderFooter()
}

func (m *Model) renderRow(n notify.Notice, selected bool, now time.Time) string {
	cursor := "  "
	if selected {
		cursor = styles.NoticeCursorStyle.Render("▸ ")
	}

	dot := styles.TextMutedStyle.Render(styles.IconRead)
	titleStyle := styles.NoticeReadStyle
	if !n.Read {
		dot = styles.UnreadDotStyle.Render(styles.IconUnread)
		titleStyle = styles.NoticeTitleStyle
	}

	var flags string
	if n.Transient {
		flags += " " + styles.IconTransient
	}
	if n.Shareable {
		flags += " " + styles.IconShare
	}
	if m.muter.Muted(n.Category) {
		flags += " " + styles.IconMuted
	}

	left := fmt.Sprintf("%s%s %s %s%s", cursor, dot, n.Category.Icon(), titleStyle.Render(n.Title), flags)
	age := styles.NoticeTimeStyle.Render(notify.RelativeTime(now, n.CreatedAt))
	line := components.SpreadRow(left, age, m.width)

	body := styles.NoticeBodyStyle.Render(truncate(firstLine(n.Body), max(m.width-6, 10)))
	row := line + "\n" + "      " + body + "\n"
	if selected {
		return styles.NoticeSelectedBg.Width(m.width).Render(row)
	}
	return row
}

func (m *Model) renderFooter() string {
	status := ""
	if m.status != "" {
		if m.statusErr {
			status = styles.TextErrorStyle.Render(m.status)
		} else {
			status = styles.TextSuccessStyle.Render(m.status)
		}
	} else {
		status = styles.TextMutedStyle.Render(fmt.Sprintf("%d notices", len(m.notices)))
	}
	return styles.StatusBarStyle.Render(status) + "\n" + m.help.View(m.keys)
}

func (m *Model) renderCompose() string {
	header := styles.HeaderStyle.Render("New notice")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", m.compose.form.View())
}

func (m *Model) helpDialog() *components.HelpDialog {
	k := m.keys
	sections := []components.HelpDialogSection{
		components.SectionFromBindings("Navigation", k.Up, k.Down, k.Open, k.Back),
		components.SectionFromBindings("Notices", k.MarkRead, k.Remove, k.ClearAll, k.Share, k.Compose),
		components.SectionFromBindings("General", k.DismissToast, k.Help, k.Quit),
	}
	return components.NewHelpDialog("Keyboard Shortcuts", sections, m.width, m.height)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
