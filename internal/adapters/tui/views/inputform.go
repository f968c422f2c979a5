package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"daybook/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Tab    key.Binding
}

// DefaultInputFormKeys returns the default input form key bindings
var DefaultInputFormKeys = InputFormKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "next field"),
	),
}

// FormAction reports what a key did to the form
type FormAction int

const (
	FormEditing FormAction = iota
	FormSubmitted
	FormCancelled
)

// InputField represents a single input field with label and textinput
type InputField struct {
	Label string
	Input textinput.Model
}

// InputForm manages text input fields with focus handling. A form is
// inactive until Open is called and closes itself on submit or cancel.
type InputForm struct {
	Title        string
	Fields       []InputField
	FocusedField int
	Keys         InputFormKeyMap

	active bool
}

// NewInputForm creates a new input form with the given fields
func NewInputForm(title string, fields ...InputField) *InputForm {
	return &InputForm{
		Title:  title,
		Fields: fields,
		Keys:   DefaultInputFormKeys,
	}
}

// NewInputField creates a new input field with the given label and placeholder
func NewInputField(label, placeholder string, charLimit int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{
		Label: label,
		Input: input,
	}
}

// Open activates the form with initial values, one per field in order
func (f *InputForm) Open(values ...string) tea.Cmd {
	for i := range f.Fields {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		f.Fields[i].Input.SetValue(v)
		f.Fields[i].Input.CursorEnd()
	}
	f.active = true
	f.SetFocus(0)
	return textinput.Blink
}

// Active reports whether the form is capturing keys
func (f *InputForm) Active() bool {
	return f.active
}

// Update handles a message while the form is open. Submit and cancel close
// the form; values stay readable until the next Open.
func (f *InputForm) Update(msg tea.Msg) (FormAction, tea.Cmd) {
	if !f.active {
		return FormEditing, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, f.Keys.Cancel):
			f.close()
			return FormCancelled, nil
		case key.Matches(msg, f.Keys.Submit):
			f.close()
			return FormSubmitted, nil
		case key.Matches(msg, f.Keys.Tab):
			f.NextField()
			return FormEditing, nil
		}
	}

	var cmd tea.Cmd
	if f.FocusedField >= 0 && f.FocusedField < len(f.Fields) {
		f.Fields[f.FocusedField].Input, cmd = f.Fields[f.FocusedField].Input.Update(msg)
	}
	return FormEditing, cmd
}

func (f *InputForm) close() {
	f.active = false
	for i := range f.Fields {
		f.Fields[i].Input.Blur()
	}
}

// NextField moves focus to the next field
func (f *InputForm) NextField() {
	if len(f.Fields) <= 1 {
		return
	}
	f.SetFocus((f.FocusedField + 1) % len(f.Fields))
}

// SetFocus sets focus to a specific field
func (f *InputForm) SetFocus(index int) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	if f.FocusedField >= 0 && f.FocusedField < len(f.Fields) {
		f.Fields[f.FocusedField].Input.Blur()
	}
	f.FocusedField = index
	f.Fields[f.FocusedField].Input.Focus()
}

// Value returns the trimmed value of a field by index
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[index].Input.Value())
}

// View renders the form title, every field and the key hints
func (f *InputForm) View(submitText string) string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(f.Title))
	b.WriteString("\n")
	for i, field := range f.Fields {
		b.WriteString(styles.MutedText.Render(field.Label))
		b.WriteString("\n")
		if i == f.FocusedField {
			b.WriteString(styles.InputFocused.Render(field.Input.View()))
		} else {
			b.WriteString(styles.InputField.Render(field.Input.View()))
		}
		b.WriteString("\n")
	}
	b.WriteString(f.renderHelp(submitText))
	return b.String()
}

func (f *InputForm) renderHelp(submitText string) string {
	var parts []string
	if len(f.Fields) > 1 {
		parts = append(parts, styles.HelpKey.Render("tab")+" "+styles.HelpDesc.Render("next field"))
	}
	parts = append(parts, styles.HelpKey.Render("enter")+" "+styles.HelpDesc.Render(submitText))
	parts = append(parts, styles.HelpKey.Render("esc")+" "+styles.HelpDesc.Render("cancel"))
	return strings.Join(parts, "  ")
}
