package views

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"daybook/internal/adapters/tui/styles"
	"daybook/internal/application/commands"
	"daybook/internal/domain"
)

// ListsKeyMap defines key bindings for the lists view
type ListsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NewList key.Binding
	AddItem key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Yank    key.Binding
	Reload  key.Binding
}

var ListsKeys = ListsKeyMap{
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "navigate")),
	Down:    key.NewBinding(key.WithKeys("j", "down")),
	NewList: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new list")),
	AddItem: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
	Toggle:  key.NewBinding(key.WithKeys("x", " ", "enter"), key.WithHelp("x", "toggle")),
	Delete:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),
	Yank:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy list")),
	Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
}

type listsLoadedMsg struct {
	lists   []domain.ListRecord
	message string
}

type listsChangedMsg struct{ message string }

// itemAddedMsg clears the draft of the list the item went into
type itemAddedMsg struct {
	listID  int64
	message string
}

type listsErrMsg struct{ err error }

// listRow is one line of the lists view: a list header or one of its items
type listRow struct {
	list int // index into lists
	item int // index into the list's items, -1 for the header
}

// ListsModel shows every list with its items and edits them
type ListsModel struct {
	ViewState
	svc *commands.Services

	lists  []domain.ListRecord
	rows   []listRow
	cursor int
	loaded bool

	// drafts keeps unsent item text per list id across prompts
	drafts map[int64]string

	form       *InputForm
	formListID int64 // zero while naming a new list
	confirm    ConfirmationModel

	// copy is swapped in tests
	copy func(string) error
}

// NewListsModel creates a new lists view
func NewListsModel(svc *commands.Services) *ListsModel {
	return &ListsModel{
		svc:     svc,
		drafts:  make(map[int64]string),
		form:    NewInputForm("", NewInputField("", "", 200)),
		confirm: NewConfirmationModel(),
		copy:    clipboard.WriteAll,
	}
}

// Init loads the lists
func (m *ListsModel) Init() tea.Cmd {
	return m.load(false, "")
}

// Capturing reports whether the view is consuming every key
func (m *ListsModel) Capturing() bool {
	return m.form.Active() || m.confirm.Active()
}

// Draft returns the unsent item text of a list
func (m *ListsModel) Draft(listID int64) string {
	return m.drafts[listID]
}

func (m *ListsModel) load(reload bool, message string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		cmd := commands.NewShowListsCommand(svc.Sessions, svc.Lists)
		cmd.Reload = reload
		lists, err := cmd.Execute(context.Background())
		if err != nil {
			return listsErrMsg{err}
		}
		return listsLoadedMsg{lists: lists, message: message}
	}
}

// Update handles messages for the lists view
func (m *ListsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listsLoadedMsg:
		m.AuthRequired = false
		m.loaded = true
		m.setLists(msg.lists)
		if msg.message != "" {
			m.SetMessage(msg.message, false)
		}
		return m, nil

	case listsChangedMsg:
		return m, m.load(false, msg.message)

	case itemAddedMsg:
		delete(m.drafts, msg.listID)
		return m, m.load(false, msg.message)

	case listsErrMsg:
		m.SetError(msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.form.Active() {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ListsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.confirm.HandleKeyMsg(msg); handled {
		return m, cmd
	}
	if m.form.Active() {
		return m, m.updateForm(msg)
	}

	m.ClearMessage()
	keys := ListsKeys

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.NewList):
		m.formListID = 0
		m.form.Title = "New list"
		m.form.Fields[0].Label = "Name"
		m.form.Fields[0].Input.Placeholder = "Groceries"
		return m, m.form.Open()

	case key.Matches(msg, keys.AddItem):
		list, ok := m.selectedList()
		if !ok {
			m.SetMessage("Create a list first", true)
			return m, nil
		}
		m.formListID = list.ID
		m.form.Title = "Add to " + list.Name
		m.form.Fields[0].Label = "Item"
		m.form.Fields[0].Input.Placeholder = "Milk"
		return m, m.form.Open(m.drafts[list.ID])

	case key.Matches(msg, keys.Toggle):
		if list, item, ok := m.selectedItem(); ok {
			return m, m.toggleItem(list.ID, item.ID)
		}

	case key.Matches(msg, keys.Delete):
		if list, item, ok := m.selectedItem(); ok {
			return m, m.deleteItem(list.ID, item.ID)
		}
		if list, ok := m.selectedList(); ok {
			question := fmt.Sprintf("Delete list %q and its %d items?", list.Name, len(list.Items))
			m.confirm.Ask(question, m.deleteList(list.ID))
		}

	case key.Matches(msg, keys.Yank):
		if list, ok := m.selectedList(); ok {
			if err := m.copy(list.PlainText()); err != nil {
				m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
			} else {
				m.SetMessage(fmt.Sprintf("Copied %s", list.Name), false)
			}
		}

	case key.Matches(msg, keys.Reload):
		return m, m.load(true, "")
	}
	return m, nil
}

// updateForm feeds a key to the open prompt. Item text is kept as the
// list's draft whether the prompt is sent or dismissed, and only cleared
// once the item is stored.
func (m *ListsModel) updateForm(msg tea.KeyMsg) tea.Cmd {
	action, cmd := m.form.Update(msg)
	value := m.form.Value(0)

	if m.formListID != 0 && action != FormEditing {
		if value == "" {
			delete(m.drafts, m.formListID)
		} else {
			m.drafts[m.formListID] = value
		}
	}
	if action != FormSubmitted || value == "" {
		return cmd
	}

	if m.formListID == 0 {
		return m.createList(value)
	}
	return m.addItem(m.formListID, value)
}

func (m *ListsModel) createList(name string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		result, err := commands.NewCreateListCommand(svc.Sessions, svc.Lists, name).Execute(context.Background())
		if err != nil {
			return listsErrMsg{err}
		}
		return listsChangedMsg{result.Message}
	}
}

func (m *ListsModel) deleteList(id int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		result, err := commands.NewDeleteListCommand(svc.Sessions, svc.Lists, id).Execute(context.Background())
		if err != nil {
			return listsErrMsg{err}
		}
		return listsChangedMsg{result.Message}
	}
}

func (m *ListsModel) addItem(listID int64, title string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		result, err := commands.NewAddItemCommand(svc.Sessions, svc.Lists, listID, title).Execute(context.Background())
		if err != nil {
			return listsErrMsg{err}
		}
		return itemAddedMsg{listID: listID, message: result.Message}
	}
}

func (m *ListsModel) deleteItem(listID, itemID int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		result, err := commands.NewDeleteItemCommand(svc.Sessions, svc.Lists, listID, itemID).Execute(context.Background())
		if err != nil {
			return listsErrMsg{err}
		}
		return listsChangedMsg{result.Message}
	}
}

func (m *ListsModel) toggleItem(listID, itemID int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		result, err := commands.NewToggleItemCommand(svc.Sessions, svc.Lists, listID, itemID).Execute(context.Background())
		if err != nil {
			return listsErrMsg{err}
		}
		return listsChangedMsg{result.Message}
	}
}

// setLists replaces the rows, keeping the cursor on the same list or item
func (m *ListsModel) setLists(lists []domain.ListRecord) {
	var listID, itemID int64
	if list, ok := m.selectedList(); ok {
		listID = list.ID
	}
	if _, item, ok := m.selectedItem(); ok {
		itemID = item.ID
	}

	m.lists = lists
	m.rows = m.rows[:0]
	for li, l := range lists {
		m.rows = append(m.rows, listRow{list: li, item: -1})
		for ii := range l.Items {
			m.rows = append(m.rows, listRow{list: li, item: ii})
		}
	}

	fallback := -1
	for i, r := range m.rows {
		l := m.lists[r.list]
		if l.ID != listID {
			continue
		}
		if r.item < 0 && fallback < 0 {
			fallback = i
		}
		if r.item >= 0 && l.Items[r.item].ID == itemID {
			m.cursor = i
			return
		}
	}
	switch {
	case fallback >= 0:
		m.cursor = fallback
	case m.cursor >= len(m.rows):
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m *ListsModel) selectedList() (domain.ListRecord, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return domain.ListRecord{}, false
	}
	return m.lists[m.rows[m.cursor].list], true
}

func (m *ListsModel) selectedItem() (domain.ListRecord, domain.ItemRecord, bool) {
	list, ok := m.selectedList()
	if !ok {
		return list, domain.ItemRecord{}, false
	}
	r := m.rows[m.cursor]
	if r.item < 0 {
		return list, domain.ItemRecord{}, false
	}
	return list, list.Items[r.item], true
}

// View renders the lists view
func (m *ListsModel) View() string {
	if m.AuthRequired {
		return RenderAuthNotice()
	}

	v := NewViewBuilder().Title("Lists")
	switch {
	case !m.loaded:
		v.Muted("Loading...")
	case len(m.rows) == 0:
		v.Muted("No lists yet. Press n to create one.")
	default:
		v.Subtitle(fmt.Sprintf("%d lists", len(m.lists)))
		for i, r := range m.rows {
			v.Line(m.renderRow(r, i == m.cursor))
		}
	}

	switch {
	case m.form.Active():
		v.BlankLine().Line(m.form.View("save"))
	case m.confirm.Active():
		v.BlankLine().Line(m.confirm.View())
	}

	keys := ListsKeys
	return v.Message(m.Message, m.MessageErr).
		Help(keys.Up, keys.NewList, keys.AddItem, keys.Toggle, keys.Delete, keys.Yank, keys.Reload).
		String()
}

func (m *ListsModel) renderRow(r listRow, selected bool) string {
	l := m.lists[r.list]
	if r.item < 0 {
		text := fmt.Sprintf("%s (%d/%d)", l.Name, l.Remaining(), len(l.Items))
		if draft := m.drafts[l.ID]; draft != "" {
			text += styles.MutedText.Render("  draft: " + truncate(draft, 30))
		}
		if selected {
			return styles.EntrySelected.Render(text)
		}
		return styles.ListName.Render(text)
	}

	item := l.Items[r.item]
	text := "  " + checkbox(item.Done) + " " + item.Title
	switch {
	case selected:
		return styles.EntrySelected.Render(text)
	case item.Done:
		return styles.Done.Render(text)
	default:
		return styles.ItemRow.Render(text)
	}
}
