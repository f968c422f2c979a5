package styles

import (
	"github.com/charmbracelet/lipgloss"

	"daybook/internal/domain"
)

// CellWidth is the width of one calendar grid column
const CellWidth = 14

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Entry kind colors
	KindCalendar = lipgloss.Color("#60A5FA") // Blue
	KindTask     = lipgloss.Color("#F97316") // Orange
	KindNote     = lipgloss.Color("#EC4899") // Pink

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Tabs
	Tab = lipgloss.NewStyle().
		Foreground(Muted).
		Padding(0, 1)

	TabActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true).
			Padding(0, 1)

	// Grid cells
	Cell = lipgloss.NewStyle().
		Width(CellWidth).
		Height(4).
		Padding(0, 1)

	CellOutside = Cell.
			Foreground(Muted)

	CellToday = Cell.
			Foreground(Secondary).
			Bold(true)

	CellSelected = Cell.
			Background(Primary).
			Foreground(White).
			Bold(true)

	HourCell = lipgloss.NewStyle().
			Width(CellWidth).
			Padding(0, 1)

	HourCellSelected = HourCell.
				Background(Primary).
				Foreground(White)

	HourLabel = lipgloss.NewStyle().
			Foreground(Muted).
			Width(7)

	Weekday = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true).
		Width(CellWidth).
		Padding(0, 1)

	// Entry and list rows
	EntrySelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	Done = lipgloss.NewStyle().
		Foreground(Muted).
		Strikethrough(true)

	ListName = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	ItemRow = lipgloss.NewStyle()

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Notice = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Warning).
		Padding(1, 2)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// KindColor returns the color an entry kind is drawn with
func KindColor(kind domain.EntryKind) lipgloss.Color {
	switch kind {
	case domain.EntryKindCalendar:
		return KindCalendar
	case domain.EntryKindTask:
		return KindTask
	case domain.EntryKindNote:
		return KindNote
	default:
		return Primary
	}
}

// KindStyle returns the foreground style for entries of kind
func KindStyle(kind domain.EntryKind) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(KindColor(kind))
}
