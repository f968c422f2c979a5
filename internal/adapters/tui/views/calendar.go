package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"daybook/internal/adapters/tui/styles"
	"daybook/internal/application/commands"
	"daybook/internal/domain"
)

// CalendarKeyMap defines key bindings for the calendar view
type CalendarKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Prev      key.Binding
	Next      key.Binding
	Month     key.Binding
	Week      key.Binding
	Day       key.Binding
	Today     key.Binding
	NextEntry key.Binding
	PrevEntry key.Binding
	NewEvent  key.Binding
	NewTask   key.Binding
	NewNote   key.Binding
	Toggle    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Reload    key.Binding
}

var CalendarKeys = CalendarKeyMap{
	Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "move")),
	Right:     key.NewBinding(key.WithKeys("l", "right")),
	Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "move")),
	Down:      key.NewBinding(key.WithKeys("j", "down")),
	Prev:      key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "prev/next period")),
	Next:      key.NewBinding(key.WithKeys("]")),
	Month:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
	Week:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
	Day:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day")),
	Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	NextEntry: key.NewBinding(key.WithKeys("J"), key.WithHelp("J/K", "select entry")),
	PrevEntry: key.NewBinding(key.WithKeys("K")),
	NewEvent:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new event")),
	NewTask:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "new task")),
	NewNote:   key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new note")),
	Toggle:    key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "toggle task")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit content")),
	Delete:    key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),
	Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
}

type calendarLoadedMsg struct {
	result *commands.CalendarViewResult
}

type calendarChangedMsg struct{ message string }

type calendarErrMsg struct{ err error }

// CalendarModel renders the period around a date cursor as a grid of cells
// and edits the entries placed in them.
type CalendarModel struct {
	ViewState
	svc *commands.Services

	cursor  domain.Cursor
	title   string
	buckets []domain.Bucket

	// cells is the grid in row-major order, cols wide
	cells    []domain.Bucket
	cols     int
	selected int
	entry    int
	focus    string // date to select after the next load

	form     *InputForm
	formKind domain.EntryKind
	formCell domain.Bucket
	confirm  ConfirmationModel
}

// NewCalendarModel creates a calendar view starting at today
func NewCalendarModel(svc *commands.Services) *CalendarModel {
	cursor := svc.Cursor()
	return &CalendarModel{
		svc:     svc,
		cursor:  cursor,
		focus:   domain.FormatDate(cursor.Anchor),
		confirm: NewConfirmationModel(),
		form: NewInputForm("New entry",
			NewInputField("Title", "What is happening?", 200),
			NewInputField("Time (HH:MM, optional)", "09:30", 5),
		),
	}
}

// Init loads the first period
func (m *CalendarModel) Init() tea.Cmd {
	return m.load()
}

// Capturing reports whether the view is consuming every key
func (m *CalendarModel) Capturing() bool {
	return m.form.Active() || m.confirm.Active()
}

// Cursor returns the current date cursor
func (m *CalendarModel) Cursor() domain.Cursor {
	return m.cursor
}

// Selected returns the selected cell
func (m *CalendarModel) Selected() (domain.Bucket, bool) {
	if m.selected < 0 || m.selected >= len(m.cells) {
		return domain.Bucket{}, false
	}
	return m.cells[m.selected], true
}

// SelectedEntry returns the highlighted entry of the selected cell
func (m *CalendarModel) SelectedEntry() (domain.DatedEntry, bool) {
	cell, ok := m.Selected()
	if !ok || m.entry < 0 || m.entry >= len(cell.Entries) {
		return domain.DatedEntry{}, false
	}
	return cell.Entries[m.entry], true
}

func (m *CalendarModel) load() tea.Cmd {
	svc := m.svc
	cursor := m.cursor
	return func() tea.Msg {
		cmd := commands.NewCalendarViewCommand(svc.Sessions, cursor, svc.EntryStores()...)
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return calendarErrMsg{err}
		}
		return calendarLoadedMsg{result}
	}
}

// Update handles messages for the calendar view
func (m *CalendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarLoadedMsg:
		// Drop results for a period the user already navigated away from
		if !sameCursor(msg.result.Cursor, m.cursor) {
			return m, nil
		}
		m.AuthRequired = false
		m.title = msg.result.Title
		m.setBuckets(msg.result.Buckets)
		return m, nil

	case calendarChangedMsg:
		m.SetMessage(msg.message, false)
		m.setBuckets(commands.Rebuild(m.cursor, m.svc.EntryStores()...))
		return m, nil

	case calendarErrMsg:
		m.SetError(msg.err)
		return m, nil

	case ContentEditedMsg:
		if msg.Err != nil {
			m.SetError(msg.Err)
			return m, nil
		}
		return m, m.saveContent(msg.Entry, msg.Content)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.form.Active() {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *CalendarModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.confirm.HandleKeyMsg(msg); handled {
		return m, cmd
	}
	if m.form.Active() {
		action, cmd := m.form.Update(msg)
		if action == FormSubmitted {
			return m, m.createEntry()
		}
		return m, cmd
	}

	m.ClearMessage()
	keys := CalendarKeys

	switch {
	case key.Matches(msg, keys.Left):
		m.move(-1)
	case key.Matches(msg, keys.Right):
		m.move(1)
	case key.Matches(msg, keys.Up):
		m.move(-m.cols)
	case key.Matches(msg, keys.Down):
		m.move(m.cols)

	case key.Matches(msg, keys.Prev):
		return m, m.step(domain.Prev)
	case key.Matches(msg, keys.Next):
		return m, m.step(domain.Next)
	case key.Matches(msg, keys.Month):
		return m, m.zoom(domain.GranularityMonth)
	case key.Matches(msg, keys.Week):
		return m, m.zoom(domain.GranularityWeek)
	case key.Matches(msg, keys.Day):
		return m, m.zoom(domain.GranularityDay)
	case key.Matches(msg, keys.Today):
		m.cursor.Today(m.svc.Now())
		m.focus = domain.FormatDate(m.cursor.Anchor)
		return m, m.load()
	case key.Matches(msg, keys.Reload):
		return m, m.load()

	case key.Matches(msg, keys.NextEntry):
		if cell, ok := m.Selected(); ok && m.entry < len(cell.Entries)-1 {
			m.entry++
		}
	case key.Matches(msg, keys.PrevEntry):
		if m.entry > 0 {
			m.entry--
		}

	case key.Matches(msg, keys.NewEvent):
		return m, m.openForm(domain.EntryKindCalendar)
	case key.Matches(msg, keys.NewTask):
		return m, m.openForm(domain.EntryKindTask)
	case key.Matches(msg, keys.NewNote):
		return m, m.openForm(domain.EntryKindNote)

	case key.Matches(msg, keys.Toggle):
		if e, ok := m.SelectedEntry(); ok && e.Kind == domain.EntryKindTask {
			return m, m.toggleTask(e)
		}
	case key.Matches(msg, keys.Edit):
		if e, ok := m.SelectedEntry(); ok {
			return m, func() tea.Msg { return EditContentMsg{Entry: e} }
		}
	case key.Matches(msg, keys.Delete):
		if e, ok := m.SelectedEntry(); ok {
			m.confirm.Ask(fmt.Sprintf("Delete %s %q?", e.Kind, e.Title), m.deleteEntry(e))
		}
	}
	return m, nil
}

// move shifts the selection by delta cells, staying on the grid
func (m *CalendarModel) move(delta int) {
	if len(m.cells) == 0 {
		return
	}
	next := m.selected + delta
	if next < 0 || next >= len(m.cells) {
		return
	}
	m.selected = next
	m.entry = 0
}

func (m *CalendarModel) step(dir domain.Direction) tea.Cmd {
	m.cursor.Step(dir)
	m.focus = domain.FormatDate(m.cursor.Anchor)
	return m.load()
}

// zoom changes granularity around the selected day
func (m *CalendarModel) zoom(g domain.Granularity) tea.Cmd {
	if cell, ok := m.Selected(); ok {
		m.cursor.Anchor = domain.StartOfDay(cell.Start)
	}
	m.cursor.SetGranularity(g)
	m.focus = domain.FormatDate(m.cursor.Anchor)
	return m.load()
}

func (m *CalendarModel) openForm(kind domain.EntryKind) tea.Cmd {
	cell, ok := m.Selected()
	if !ok {
		return nil
	}
	m.formKind = kind
	m.formCell = cell
	m.form.Title = fmt.Sprintf("New %s on %s", kind, cell.Date)
	return m.form.Open("", commands.CellDraft("", cell).Time)
}

func (m *CalendarModel) createEntry() tea.Cmd {
	draft := commands.CellDraft(m.form.Value(0), m.formCell)
	draft.Time = m.form.Value(1)
	kind := m.formKind
	svc := m.svc
	return func() tea.Msg {
		store, err := svc.Entries(kind)
		if err != nil {
			return calendarErrMsg{err}
		}
		result, err := commands.NewCreateEntryCommand(svc.Sessions, store, draft).Execute(context.Background())
		if err != nil {
			return calendarErrMsg{err}
		}
		return calendarChangedMsg{result.Message}
	}
}

func (m *CalendarModel) toggleTask(e domain.DatedEntry) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		result, err := commands.NewToggleTaskCommand(svc.Sessions, svc.Tasks, e.ID).Execute(context.Background())
		if err != nil {
			return calendarErrMsg{err}
		}
		return calendarChangedMsg{result.Message}
	}
}

func (m *CalendarModel) deleteEntry(e domain.DatedEntry) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		store, err := svc.Entries(e.Kind)
		if err != nil {
			return calendarErrMsg{err}
		}
		result, err := commands.NewDeleteEntryCommand(svc.Sessions, store, e.ID).Execute(context.Background())
		if err != nil {
			return calendarErrMsg{err}
		}
		return calendarChangedMsg{result.Message}
	}
}

func (m *CalendarModel) saveContent(e domain.DatedEntry, content string) tea.Cmd {
	if content == e.Content {
		return nil
	}
	svc := m.svc
	return func() tea.Msg {
		store, err := svc.Entries(e.Kind)
		if err != nil {
			return calendarErrMsg{err}
		}
		patch := domain.EntryPatch{Content: &content}
		result, err := commands.NewUpdateEntryCommand(svc.Sessions, store, e.ID, patch).Execute(context.Background())
		if err != nil {
			return calendarErrMsg{err}
		}
		return calendarChangedMsg{result.Message}
	}
}

// setBuckets lays out a new grid, keeping the selection on the same cell
// when it is still visible
func (m *CalendarModel) setBuckets(buckets []domain.Bucket) {
	date, hour := m.focus, -1
	if date == "" {
		if cell, ok := m.Selected(); ok {
			date, hour = cell.Date, cell.Hour
		}
	}
	m.focus = ""

	m.buckets = buckets
	m.cells, m.cols = layoutCells(buckets, m.cursor, m.entries())

	anchor := domain.FormatDate(m.cursor.Anchor)
	if !m.selectCell(date, hour) && !m.selectCell(date, -1) &&
		!m.selectCell(anchor, -1) && !m.selectCell(anchor, domain.FirstHour) {
		m.selected = 0
	}
	if cell, ok := m.Selected(); !ok || m.entry >= len(cell.Entries) {
		m.entry = 0
	}
}

func (m *CalendarModel) selectCell(date string, hour int) bool {
	for i, c := range m.cells {
		if c.Date == date && c.Hour == hour {
			m.selected = i
			return true
		}
	}
	return false
}

func (m *CalendarModel) entries() []domain.DatedEntry {
	var out []domain.DatedEntry
	for _, s := range m.svc.EntryStores() {
		out = append(out, s.Entries()...)
	}
	return out
}

// layoutCells flattens buckets into a row-major grid. Week grids get an
// all-day row above the hours; day grids get an all-day cell above the hours.
func layoutCells(buckets []domain.Bucket, cursor domain.Cursor, entries []domain.DatedEntry) ([]domain.Bucket, int) {
	switch cursor.Granularity {
	case domain.GranularityWeek:
		cols := len(buckets)
		cells := make([]domain.Bucket, 0, cols*(domain.HoursPerDay+1))
		for _, day := range buckets {
			allDay := day
			allDay.Hours = nil
			cells = append(cells, allDay)
		}
		for h := 0; h < domain.HoursPerDay; h++ {
			for _, day := range buckets {
				if h < len(day.Hours) {
					cells = append(cells, day.Hours[h])
				}
			}
		}
		return cells, cols

	case domain.GranularityDay:
		date := domain.FormatDate(cursor.Anchor)
		allDay := domain.Bucket{
			Span:     domain.SpanDay,
			Date:     date,
			Start:    domain.StartOfDay(cursor.Anchor),
			Hour:     -1,
			Label:    "all day",
			InPeriod: true,
			Entries:  domain.Untimed(date, entries),
		}
		domain.SortEntries(allDay.Entries)
		return append([]domain.Bucket{allDay}, buckets...), 1

	default:
		return buckets, domain.DaysPerWeek
	}
}

func sameCursor(a, b domain.Cursor) bool {
	return a.Anchor.Equal(b.Anchor) && a.Granularity == b.Granularity && a.WeekStart == b.WeekStart
}

// View renders the calendar view
func (m *CalendarModel) View() string {
	if m.AuthRequired {
		return RenderAuthNotice()
	}
	if m.buckets == nil {
		return NewViewBuilder().
			Message(m.Message, m.MessageErr).
			Muted("Loading...").
			String()
	}

	v := NewViewBuilder().
		Title(m.title).
		Subtitle(fmt.Sprintf("%s view, weeks start on %s", m.cursor.Granularity, m.cursor.WeekStart))

	switch m.cursor.Granularity {
	case domain.GranularityWeek:
		v.Line(m.renderWeek())
	case domain.GranularityDay:
		v.Line(m.renderDay())
	default:
		v.Line(m.renderMonth())
	}

	v.BlankLine().Raw(m.renderSelection())

	switch {
	case m.form.Active():
		v.BlankLine().Line(m.form.View("create"))
	case m.confirm.Active():
		v.BlankLine().Line(m.confirm.View())
	}

	keys := CalendarKeys
	return v.Message(m.Message, m.MessageErr).
		Help(keys.Left, keys.Prev, keys.Month, keys.Week, keys.Day, keys.Today,
			keys.NewEvent, keys.NewTask, keys.NewNote, keys.Toggle, keys.Delete).
		String()
}

func (m *CalendarModel) today() string {
	return domain.FormatDate(m.svc.Now().In(m.svc.Location))
}

func (m *CalendarModel) renderMonth() string {
	today := m.today()

	header := make([]string, 0, domain.DaysPerWeek)
	for i := 0; i < domain.DaysPerWeek; i++ {
		wd := time.Weekday((int(m.cursor.WeekStart) + i) % domain.DaysPerWeek)
		header = append(header, styles.Weekday.Render(wd.String()[:3]))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for start := 0; start < len(m.cells); start += m.cols {
		end := min(start+m.cols, len(m.cells))
		row := make([]string, 0, m.cols)
		for i := start; i < end; i++ {
			row = append(row, m.renderMonthCell(i, today))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// monthCellEntries is how many entry lines fit under the day number
const monthCellEntries = 2

func (m *CalendarModel) renderMonthCell(i int, today string) string {
	c := m.cells[i]
	width := styles.CellWidth - 2

	lines := []string{c.Label}
	for j, e := range c.Entries {
		if j == monthCellEntries {
			lines = append(lines, fmt.Sprintf("+%d more", len(c.Entries)-monthCellEntries))
			break
		}
		lines = append(lines, truncate(cellText(e), width))
	}

	style := styles.Cell
	switch {
	case i == m.selected:
		style = styles.CellSelected
	case c.Date == today:
		style = styles.CellToday
	case !c.InPeriod:
		style = styles.CellOutside
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *CalendarModel) renderWeek() string {
	today := m.today()

	header := []string{styles.HourLabel.Render("")}
	for _, day := range m.buckets {
		style := styles.Weekday
		if day.Date == today {
			style = style.Foreground(styles.Warning)
		}
		header = append(header, style.Render(day.Label))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for start := 0; start < len(m.cells); start += m.cols {
		end := min(start+m.cols, len(m.cells))
		label := "all day"
		if m.cells[start].Span == domain.SpanHour {
			label = m.cells[start].Label
		}
		row := []string{styles.HourLabel.Render(label)}
		for i := start; i < end; i++ {
			row = append(row, m.renderSlot(i, styles.CellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// dayCellWidth is the width of the one column in day view
const dayCellWidth = 5 * styles.CellWidth

func (m *CalendarModel) renderDay() string {
	rows := make([]string, 0, len(m.cells))
	for i, c := range m.cells {
		label := c.Label
		if c.Span == domain.SpanDay {
			label = "all day"
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			styles.HourLabel.Render(label),
			m.renderSlot(i, dayCellWidth),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderSlot renders a one line cell: the entry titles joined, cut to width
func (m *CalendarModel) renderSlot(i, width int) string {
	c := m.cells[i]
	titles := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		titles = append(titles, cellText(e))
	}
	text := truncate(strings.Join(titles, ", "), width-2)

	style := styles.HourCell.Width(width)
	if i == m.selected {
		style = styles.HourCellSelected.Width(width)
	} else if len(c.Entries) == 0 {
		text = styles.MutedText.Render("·")
	}
	return style.Render(text)
}

// renderSelection lists the entries of the selected cell
func (m *CalendarModel) renderSelection() string {
	cell, ok := m.Selected()
	if !ok {
		return ""
	}

	v := NewViewBuilder()
	heading := cell.Date
	if cell.Span == domain.SpanHour {
		heading += " " + cell.Label
	}
	v.Line(styles.InputLabel.Render(heading))

	if len(cell.Entries) == 0 {
		return v.Muted("Nothing here. Press n, T or N to add an event, task or note.").String()
	}
	for i, e := range cell.Entries {
		v.Line("  " + RenderEntryLine(e, i == m.entry))
	}
	if e, ok := m.SelectedEntry(); ok && e.Content != "" {
		v.Muted("  " + truncate(strings.ReplaceAll(e.Content, "\n", " "), 4*styles.CellWidth))
	}
	return v.String()
}

// cellText is the unstyled one line form of an entry used inside grid cells
func cellText(e domain.DatedEntry) string {
	switch {
	case e.Kind == domain.EntryKindTask:
		return checkbox(e.Done) + " " + e.Title
	case e.HasTime():
		return e.Time + " " + e.Title
	default:
		return e.Title
	}
}
