package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"daybook/internal/adapters/editor"
	"daybook/internal/adapters/tui/styles"
	"daybook/internal/adapters/tui/views"
	"daybook/internal/application/commands"
	applog "daybook/internal/log"
	"daybook/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewCalendar ViewState = iota
	ViewLists
	ViewHelp
)

// AppKeyMap holds the bindings handled above the views
type AppKeyMap struct {
	Switch   key.Binding
	Calendar key.Binding
	Lists    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var AppKeys = AppKeyMap{
	Switch:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
	Calendar: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "calendar")),
	Lists:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "lists")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// App is the main TUI application model
type App struct {
	svc    *commands.Services
	editor ports.EditorOpener

	state    ViewState
	previous ViewState
	calendar *views.CalendarModel
	lists    *views.ListsModel
	help     *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. A nil editor disables content editing.
func NewApp(svc *commands.Services, ed ports.EditorOpener) *App {
	return &App{
		svc:      svc,
		editor:   ed,
		state:    ViewCalendar,
		calendar: views.NewCalendarModel(svc),
		lists:    views.NewListsModel(svc),
		help:     views.NewHelpModel(),
	}
}

// Init loads both screens so switching is instant
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.calendar.Init(), a.lists.Init())
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.calendar.SetSize(msg.Width, msg.Height)
		a.lists.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if cmd, handled := a.handleGlobalKey(msg); handled {
			return a, cmd
		}
		return a, a.updateCurrent(msg)

	case views.CloseHelpMsg:
		a.state = a.previous
		return a, nil

	case views.EditContentMsg:
		return a, a.openEditor(msg)
	}

	// Async results go to every screen; each ignores what is not its own
	_, calCmd := a.calendar.Update(msg)
	_, listCmd := a.lists.Update(msg)
	return a, tea.Batch(calCmd, listCmd)
}

// handleGlobalKey processes keys that work on every screen unless the
// active screen is capturing input
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}
	if a.capturing() {
		return nil, false
	}
	if a.state == ViewHelp {
		return nil, false
	}

	switch {
	case key.Matches(msg, AppKeys.Quit):
		return tea.Quit, true
	case key.Matches(msg, AppKeys.Switch):
		if a.state == ViewCalendar {
			a.state = ViewLists
		} else {
			a.state = ViewCalendar
		}
		return nil, true
	case key.Matches(msg, AppKeys.Calendar):
		a.state = ViewCalendar
		return nil, true
	case key.Matches(msg, AppKeys.Lists):
		a.state = ViewLists
		return nil, true
	case key.Matches(msg, AppKeys.Help):
		a.openHelp()
		return nil, true
	}
	return nil, false
}

func (a *App) openHelp() {
	if a.state != ViewHelp {
		a.previous = a.state
	}
	a.state = ViewHelp
}

func (a *App) capturing() bool {
	switch a.state {
	case ViewCalendar:
		return a.calendar.Capturing()
	case ViewLists:
		return a.lists.Capturing()
	}
	return false
}

// Delegate to current view
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.state {
	case ViewCalendar:
		_, cmd = a.calendar.Update(msg)
	case ViewLists:
		_, cmd = a.lists.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}
	return cmd
}

// openEditor suspends the program, edits the entry content in a temp file
// and hands the saved text back to the calendar
func (a *App) openEditor(msg views.EditContentMsg) tea.Cmd {
	entry := msg.Entry
	fail := func(err error) tea.Cmd {
		return func() tea.Msg {
			return views.ContentEditedMsg{Entry: entry, Err: err}
		}
	}
	if a.editor == nil {
		return fail(fmt.Errorf("no editor configured"))
	}

	path, err := editor.WriteDraft(entry.Content)
	if err != nil {
		return fail(err)
	}
	cmd, err := a.editor.Command(path)
	if err != nil {
		os.Remove(path)
		return fail(err)
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		defer os.Remove(path)
		if err != nil {
			applog.Error("editor exited", err, "entry", entry.ID)
			return views.ContentEditedMsg{Entry: entry, Err: fmt.Errorf("editor exited: %w", err)}
		}
		content, err := editor.ReadDraft(path)
		return views.ContentEditedMsg{Entry: entry, Content: content, Err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	var body string
	switch a.state {
	case ViewLists:
		body = a.lists.View()
	case ViewHelp:
		body = a.help.View()
	default:
		body = a.calendar.View()
	}
	return styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, a.renderTabs(), "", body))
}

func (a *App) renderTabs() string {
	tabs := []struct {
		label string
		state ViewState
	}{
		{"1 Calendar", ViewCalendar},
		{"2 Lists", ViewLists},
		{"? Help", ViewHelp},
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.state == a.state {
			parts = append(parts, styles.TabActive.Render(t.label))
		} else {
			parts = append(parts, styles.Tab.Render(t.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
