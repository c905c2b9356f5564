package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
	"github.com/matheuscp10/unisports-match-play/internal/core/styles"
	"github.com/matheuscp10/unisports-match-play/internal/core/validate"
)

// composeForm collects a notice draft from the user.
type composeForm struct {
	form *huh.Form

	category  string
	title     string
	body      string
	transient bool
	shareable bool
}

func newComposeForm(width int) *composeForm {
	c := &composeForm{category: string(notify.CategoryGeneral)}

	options := make([]huh.Option[string], 0, len(notify.Categories()))
	for _, cat := range notify.Categories() {
		options = append(options, huh.NewOption(cat.Icon()+" "+cat.Label(), string(cat)))
	}

	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(options...).
				Value(&c.category),
			huh.NewInput().
				Title("Title").
				Validate(validate.Title).
				Value(&c.title),
			huh.NewText().
				Title("Body").
				Description("Markdown is rendered in the detail view").
				Value(&c.body),
			huh.NewConfirm().
				Title("Transient?").
				Description("Transient notices disappear on their own").
				Value(&c.transient),
			huh.NewConfirm().
				Title("Shareable?").
				Value(&c.shareable),
		),
	).
		WithTheme(styles.FormTheme()).
		WithWidth(max(width-4, 30)).
		WithShowHelp(true)

	return c
}

// Draft converts the collected answers.
func (c *composeForm) Draft() notify.Draft {
	return notify.Draft{
		Category:  notify.Category(c.category),
		Title:     strings.TrimSpace(c.title),
		Body:      strings.TrimSpace(c.body),
		Transient: c.transient,
		Shareable: c.shareable,
	}
}
