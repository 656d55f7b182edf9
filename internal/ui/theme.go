package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// fuhl's palette: browser-history blues with a warm accent for the cursor.
var (
	Amber    = lipgloss.Color("#FFBF00")
	Sky      = lipgloss.Color("#5FAFFF")
	Emerald  = lipgloss.Color("#50C878")
	Ruby     = lipgloss.Color("#E0115F")
	Dim      = lipgloss.Color("#666666")
	Bright   = lipgloss.Color("#FFFFFF")
	Selected = lipgloss.Color("#262626")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Sky)

	Success = lipgloss.NewStyle().
		Foreground(Emerald)

	Error = lipgloss.NewStyle().
		Foreground(Ruby)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	// Picker styles
	Prompt = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	Row = lipgloss.NewStyle()

	SelectedRow = lipgloss.NewStyle().
			Foreground(Bright).
			Background(Selected).
			Bold(true)

	Highlight = lipgloss.NewStyle().
			Foreground(Sky).
			Underline(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

const (
	IconWarn   = "⚠️ "
	IconError  = "✗ "
	IconOk     = "✓ "
	IconArrow  = "→"
	IconCursor = "▎"
)

// SetColor turns styled output on or off for the whole process.
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}
