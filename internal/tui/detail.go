package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/styles"
)

const detailChrome = 4 // frame border + status line + help line

// DetailView shows one notice with its body rendered as markdown.
type DetailView struct {
	notice   notify.Notice
	viewport viewport.Model
}

// NewDetailView renders n for a terminal of the given size.
func NewDetailView(n notify.Notice, now time.Time, width, height int) *DetailView {
	vp := viewport.New(max(width-4, 10), max(height-detailChrome, 3))

	d := &DetailView{notice: n, viewport: vp}
	d.viewport.SetContent(renderNoticeMarkdown(n, now, vp.Width))
	return d
}

// NoticeID returns the id of the shown notice.
func (d *DetailView) NoticeID() string {
	return d.notice.ID
}

func (d *DetailView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

func (d *DetailView) View() string {
	return styles.DetailFrameStyle.Render(d.viewport.View())
}

func noticeMarkdown(n notify.Notice, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s %s\n\n", n.Category.Icon(), n.Title)
	if n.Body != "" {
		b.WriteString(n.Body)
		b.WriteString("\n\n")
	}

	meta := []string{n.Category.Label(), notify.RelativeTime(now, n.CreatedAt)}
	if n.Transient {
		meta = append(meta, "expires soon")
	}
	if n.Shareable {
		meta = append(meta, "shareable")
	}
	fmt.Fprintf(&b, "*%s*\n", strings.Join(meta, " · "))
	return b.String()
}

func renderNoticeMarkdown(n notify.Notice, now time.Time, width int) string {
	raw := noticeMarkdown(n, now)

	style := styles.GlamourStyle()
	noMargin := uint(0)
	style.Document.Margin = &noMargin

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw content")
		return raw
	}

	rendered, err := renderer.Render(raw)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render markdown, showing raw content")
		return raw
	}

	return strings.TrimSpace(rendered)
}
