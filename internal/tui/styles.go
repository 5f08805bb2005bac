package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	// Background colors
	ColorBgPrimary   = lipgloss.Color("#282C34")
	ColorBgSecondary = lipgloss.Color("#21252B")
	ColorBgHighlight = lipgloss.Color("#2C313C")

	// Foreground colors
	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorFgComment   = lipgloss.Color("#5C6370")

	// Syntax colors
	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")

	// UI colors
	ColorBorder = lipgloss.Color("#3F4451")
)

// Editor styles
var (
	GutterStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)

	GutterActiveStyle = lipgloss.NewStyle().
				Foreground(ColorFgPrimary).
				Bold(true)

	CursorStyle = lipgloss.NewStyle().
			Reverse(true)

	// Marks wrapped continuation rows in the gutter
	WrapMarkerStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Background(ColorBgSecondary).
			PaddingLeft(1).
			PaddingRight(1)

	StatusFileStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Background(ColorBgSecondary).
			Bold(true)

	StatusDirtyStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Background(ColorBgSecondary)

	StatusBusyStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Background(ColorBgSecondary).
			Bold(true)

	StatusInfoStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Background(ColorBgSecondary)
)

// Overlay styles
var (
	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	OverlayTitleStyle = lipgloss.NewStyle().
				Foreground(ColorBlue).
				Bold(true)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	ListItemStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	ListSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorMagenta).
				Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)
)

// Message styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Background(ColorBgSecondary)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Background(ColorBgSecondary)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	// Dimmed/info style for less important messages
	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
