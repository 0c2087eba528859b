package tui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	accent     lipgloss.Color
	user       lipgloss.Color
	assistant  lipgloss.Color
	text       lipgloss.Color
	muted      lipgloss.Color
	subtle     lipgloss.Color
	errorColor lipgloss.Color
}

var palettes = map[string]palette{
	"dark": {
		accent:     lipgloss.Color("#7D56F4"),
		user:       lipgloss.Color("#60A5FA"),
		assistant:  lipgloss.Color("#34D399"),
		text:       lipgloss.Color("#F8FAFC"),
		muted:      lipgloss.Color("#9CA3AF"),
		subtle:     lipgloss.Color("#4B5563"),
		errorColor: lipgloss.Color("#F87171"),
	},
	"light": {
		accent:     lipgloss.Color("#5B21B6"),
		user:       lipgloss.Color("#1D4ED8"),
		assistant:  lipgloss.Color("#047857"),
		text:       lipgloss.Color("#111827"),
		muted:      lipgloss.Color("#6B7280"),
		subtle:     lipgloss.Color("#D1D5DB"),
		errorColor: lipgloss.Color("#B91C1C"),
	},
}

// Styles holds every lipgloss style used by the chat view.
type Styles struct {
	Title          lipgloss.Style
	Description    lipgloss.Style
	Divider        lipgloss.Style
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	Timestamp      lipgloss.Style
	UserBody       lipgloss.Style
	AssistantBody  lipgloss.Style
	WelcomeHeading lipgloss.Style
	WelcomeText    lipgloss.Style
	Waiting        lipgloss.Style
	Hint           lipgloss.Style
	HintDisabled   lipgloss.Style
	Status         lipgloss.Style
	Error          lipgloss.Style
	Input          lipgloss.Style
}

// NewStyles returns the styles for theme ("dark" or "light"). Unknown
// themes fall back to dark.
func NewStyles(theme string) Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["dark"]
	}

	return Styles{
		Title:          lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Description:    lipgloss.NewStyle().Foreground(p.muted),
		Divider:        lipgloss.NewStyle().Foreground(p.subtle),
		UserLabel:      lipgloss.NewStyle().Bold(true).Foreground(p.user),
		AssistantLabel: lipgloss.NewStyle().Bold(true).Foreground(p.assistant),
		Timestamp:      lipgloss.NewStyle().Foreground(p.muted),
		UserBody: lipgloss.NewStyle().
			Foreground(p.text).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(p.user).
			PaddingLeft(1),
		AssistantBody: lipgloss.NewStyle().
			Foreground(p.text).
			BorderStyle(lipgloss.ThickBorder()).
			BorderLeft(true).
			BorderForeground(p.assistant).
			PaddingLeft(1),
		WelcomeHeading: lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		WelcomeText:    lipgloss.NewStyle().Foreground(p.muted),
		Waiting:        lipgloss.NewStyle().Foreground(p.assistant),
		Hint:           lipgloss.NewStyle().Foreground(p.text),
		HintDisabled:   lipgloss.NewStyle().Foreground(p.subtle),
		Status:         lipgloss.NewStyle().Foreground(p.muted).Italic(true),
		Error:          lipgloss.NewStyle().Foreground(p.errorColor),
		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.subtle),
	}
}
