package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/quickstart/internal/screen"
)

// Catppuccin Mocha, https://catppuccin.com/palette
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
)

const (
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorBrand)
	subtitleStyle = lipgloss.NewStyle().Foreground(colorOverlay1)
	keyStyle      = lipgloss.NewStyle().Bold(true).Foreground(colorFocus)
	footerStyle   = lipgloss.NewStyle().Foreground(colorOverlay1)
	statusStyle   = lipgloss.NewStyle().Foreground(colorInfo)
	noticeStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorWarning).
			Padding(0, 1)
	noticeTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)
	frameStyle       = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(colorSurface1)
)

// toneStyle returns the style for a body line.
func toneStyle(t screen.Tone) lipgloss.Style {
	switch t {
	case screen.ToneMuted:
		return lipgloss.NewStyle().Foreground(colorOverlay1)
	case screen.ToneGood:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case screen.ToneBad:
		return lipgloss.NewStyle().Foreground(colorError)
	case screen.ToneWarn:
		return lipgloss.NewStyle().Foreground(colorWarning)
	default:
		return lipgloss.NewStyle().Foreground(colorText)
	}
}
