package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"daybook/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, func() tea.Msg {
			return CloseHelpMsg{}
		}
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Daybook Help"))
	b.WriteString("\n")

	section(&b, "Calendar",
		"h / j / k / l", "Move between cells",
		"[ / ]", "Previous / next period",
		"m / w / d", "Month, week or day view",
		"t", "Back to today",
		"J / K", "Select entry in cell",
		"n / T / N", "New event, task or note in cell",
		"x / space", "Toggle task done",
		"e", "Edit entry content in $EDITOR",
		"D", "Delete entry",
		"r", "Reload from the database",
	)

	section(&b, "Lists",
		"j / k", "Move up/down",
		"n", "New list",
		"a", "Add item (unsent text is kept per list)",
		"x / enter", "Toggle item done",
		"D", "Delete item, or list with its items",
		"y", "Copy list as text",
		"r", "Reload from the database",
	)

	section(&b, "General",
		"tab", "Switch between calendar and lists",
		"1 / 2", "Calendar / lists",
		"?", "Toggle help",
		"q / Ctrl+C", "Quit",
	)

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  Hour rows run from 06:00 to 24:00. Entries without a time go in the all day row."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return b.String()
}

// section writes a heading followed by key/description pairs
func section(b *strings.Builder, title string, pairs ...string) {
	b.WriteString("\n")
	b.WriteString(styles.InputLabel.Render(title))
	b.WriteString("\n")
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(helpLine(pairs[i], pairs[i+1]))
	}
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
