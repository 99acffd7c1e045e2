package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color constants using a consistent palette
const (
	// Primary colors
	Primary     = "#7D56F4"
	PrimaryText = "#FAFAFA"

	// Status colors
	Success = "#04B575"
	Warning = "#FFA500"
	Error   = "#FF6B6B"
	Info    = "#00CED1"

	// Text colors
	Text      = "#FAFAFA"
	TextMuted = "#626262"
	TextBold  = "#90EE90"

	// Tile colors
	TileBorder      = "#7D56F4"
	TileText        = "#FAFAFA"
	PlaceholderText = "#626262"
	MaskFilled      = "#04B575"
	MaskEmpty       = "#444444"
)

// Predefined styles for common use cases
var (
	// Title styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(PrimaryText)).
			Background(lipgloss.Color(Primary)).
			Padding(0, 1)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Success)).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Error)).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Warning)).
			Bold(true)

	// Text styles
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(TextMuted)).
			Italic(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Primary)).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(TextBold)).
			Margin(1, 0, 0, 0)

	KeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Info)).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Text))

	// Puzzle tile styles
	TileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(TileBorder)).
			Foreground(lipgloss.Color(TileText)).
			Bold(true).
			Align(lipgloss.Center)

	PlaceholderTileStyle = TileStyle.
				Foreground(lipgloss.Color(PlaceholderText)).
				Bold(false).
				Italic(true)

	// Mask styles
	MaskFilledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(MaskFilled))

	MaskEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(MaskEmpty))
)

// HexColor formats 8-bit RGB as a lipgloss color
func HexColor(r, g, b uint8) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}

// CreateBgStyle creates a background style with the given RGB color
func CreateBgStyle(r, g, b uint8) lipgloss.Style {
	return lipgloss.NewStyle().Background(HexColor(r, g, b))
}
