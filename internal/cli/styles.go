package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorText    = lipgloss.Color("#cdd6f4")
	colorSubtle  = lipgloss.Color("#6c7086")
	colorGreen   = lipgloss.Color("#a6e3a1")
	colorYellow  = lipgloss.Color("#f9e2af")
	colorBlue    = lipgloss.Color("#89b4fa")
	colorRed     = lipgloss.Color("#f38ba8")
	colorMauve   = lipgloss.Color("#cba6f7")
	colorSurface = lipgloss.Color("#45475a")
)

const cellWidth = 10

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(18)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	headerCellStyle = lipgloss.NewStyle().
			Bold(true).
			Width(cellWidth).
			Align(lipgloss.Center).
			Foreground(colorMauve)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Height(3).
			Border(lipgloss.NormalBorder(), false, true, true, false).
			BorderForeground(colorSurface).
			Foreground(colorText)

	outsideCellStyle = cellStyle.
				Foreground(colorSubtle)

	workoutStyle   = lipgloss.NewStyle().Foreground(colorYellow)
	completedStyle = lipgloss.NewStyle().Foreground(colorGreen)
	overrideStyle  = lipgloss.NewStyle().Foreground(colorMauve)
)
