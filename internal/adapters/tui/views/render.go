package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	truncateWidth "github.com/muesli/reflow/truncate"

	"daybook/internal/adapters/tui/styles"
	"daybook/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderAuthNotice is shown in place of a view while nobody is signed in
func RenderAuthNotice() string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render("Sign in required"))
	b.WriteString("\n\n")
	b.WriteString("No user is configured for this daybook.\n")
	b.WriteString("Run ")
	b.WriteString(styles.HelpKey.Render("daybook-cli config init --email you@example.com"))
	b.WriteString(" and restart.")
	return styles.Notice.Render(b.String())
}

// RenderEntryLine formats an entry as "[x] 09:30 Title" colored by kind
func RenderEntryLine(e domain.DatedEntry, selected bool) string {
	var b strings.Builder
	if e.Kind == domain.EntryKindTask {
		b.WriteString(checkbox(e.Done))
		b.WriteString(" ")
	}
	if e.HasTime() {
		b.WriteString(e.Time)
		b.WriteString(" ")
	}
	b.WriteString(e.Title)

	text := b.String()
	switch {
	case selected:
		return styles.EntrySelected.Render(text)
	case e.Kind == domain.EntryKindTask && e.Done:
		return styles.Done.Render(text)
	default:
		return styles.KindStyle(e.Kind).Render(text)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// truncate shortens s to width terminal cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncateWidth.StringWithTail(s, uint(width), "…")
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString("\n")
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString("\n")
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// Raw adds raw text without any formatting
func (v *ViewBuilder) Raw(text string) *ViewBuilder {
	v.b.WriteString(text)
	return v
}

// String returns the built view string
func (v *ViewBuilder) String() string {
	return v.b.String()
}
