package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuscp10/unisports-match-play/internal/core/notify"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Style exports.
var (
	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	// Text styles.
	TextForegroundStyle     lipgloss.Style
	TextForegroundBoldStyle lipgloss.Style
	TextMutedStyle          lipgloss.Style
	TextPrimaryBoldStyle    lipgloss.Style
	TextSuccessStyle        lipgloss.Style
	TextWarningStyle        lipgloss.Style
	TextErrorStyle          lipgloss.Style

	// Notification center.
	HeaderStyle         lipgloss.Style
	BadgeStyle          lipgloss.Style
	NoticeTitleStyle    lipgloss.Style
	NoticeReadStyle     lipgloss.Style
	NoticeBodyStyle     lipgloss.Style
	NoticeTimeStyle     lipgloss.Style
	NoticeCursorStyle   lipgloss.Style
	NoticeSelectedBg    lipgloss.Style
	UnreadDotStyle      lipgloss.Style
	EmptyStateStyle     lipgloss.Style
	StatusBarStyle      lipgloss.Style
	DetailFrameStyle    lipgloss.Style
	ConfirmMessageStyle lipgloss.Style

	// Toasts.
	ToastMatchStyle   lipgloss.Style
	ToastBookingStyle lipgloss.Style
	ToastGeneralStyle lipgloss.Style

	// Modals.
	ModalStyle             lipgloss.Style
	ModalTitleStyle        lipgloss.Style
	HelpDialogModalStyle   lipgloss.Style
	HelpDialogSectionStyle lipgloss.Style
	HelpDialogHelpStyle    lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	TextForegroundStyle = lipgloss.NewStyle().Foreground(ColorForeground)
	TextForegroundBoldStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	TextMutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	TextPrimaryBoldStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	TextSuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextWarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	TextErrorStyle = lipgloss.NewStyle().Foreground(ColorError)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true).
		Padding(0, 1)
	BadgeStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorError).
		Bold(true).
		Padding(0, 1)
	NoticeTitleStyle = lipgloss.NewStyle().
		Foreground(ColorForeground).
		Bold(true)
	NoticeReadStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	NoticeBodyStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	NoticeTimeStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)
	NoticeCursorStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	NoticeSelectedBg = lipgloss.NewStyle().
		Background(ColorSurface)
	UnreadDotStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)
	EmptyStateStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(1, 2)
	StatusBarStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)
	DetailFrameStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSurface).
		Padding(0, 1)
	ConfirmMessageStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	toastBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Foreground(ColorForeground)
	ToastMatchStyle = toastBase.BorderForeground(ColorSuccess)
	ToastBookingStyle = toastBase.BorderForeground(ColorWarning)
	ToastGeneralStyle = toastBase.BorderForeground(ColorPrimary)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorForeground)
	HelpDialogModalStyle = ModalStyle
	HelpDialogSectionStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
	HelpDialogHelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		MarginTop(1)
}

// ToastStyle returns the toast frame for a notice category.
func ToastStyle(c notify.Category) lipgloss.Style {
	switch c {
	case notify.CategoryMatch:
		return ToastMatchStyle
	case notify.CategoryBooking:
		return ToastBookingStyle
	default:
		return ToastGeneralStyle
	}
}

// FormTheme returns a huh theme matching the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorSuccess)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(ColorBackground).Background(ColorPrimary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(ColorMuted).Background(ColorSurface)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
