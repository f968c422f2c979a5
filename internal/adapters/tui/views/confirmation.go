package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"daybook/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel holds one pending destructive action until the user
// answers the question
type ConfirmationModel struct {
	Question string
	Keys     ConfirmKeyMap

	onConfirm tea.Cmd
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// Ask arms the prompt; onConfirm runs only if the user answers yes
func (m *ConfirmationModel) Ask(question string, onConfirm tea.Cmd) {
	m.Question = question
	m.onConfirm = onConfirm
}

// Active reports whether a question is waiting for an answer
func (m *ConfirmationModel) Active() bool {
	return m.onConfirm != nil
}

// HandleKeyMsg processes key messages while a question is pending.
// Returns (handled, cmd) where handled is true if the key was processed.
// Any key other than confirm or cancel is swallowed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !m.Active() {
		return false, nil
	}
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		cmd := m.onConfirm
		m.reset()
		return true, cmd
	case key.Matches(msg, m.Keys.Cancel):
		m.reset()
		return true, nil
	}
	return true, nil
}

func (m *ConfirmationModel) reset() {
	m.Question = ""
	m.onConfirm = nil
}

// View renders the pending question with its key hints
func (m *ConfirmationModel) View() string {
	if !m.Active() {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.ErrorMsg.Render(m.Question))
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
