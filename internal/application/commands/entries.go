package commands

import (
	"context"
	"fmt"

	"daybook/internal/application"
	"daybook/internal/application/stores"
	"daybook/internal/domain"
	"daybook/internal/ports"
)

// CreateEntryResult contains the entries created by one command
type CreateEntryResult struct {
	Entries []domain.DatedEntry
	Message string
}

// CreateEntryCommand creates a calendar entry, task or note, optionally repeated
type CreateEntryCommand struct {
	sessions ports.SessionProvider
	store    *stores.EntryStore
	Draft    domain.Draft
	Repeat   Repeat
}

// NewCreateEntryCommand creates a new CreateEntryCommand
func NewCreateEntryCommand(sessions ports.SessionProvider, store *stores.EntryStore, draft domain.Draft) *CreateEntryCommand {
	return &CreateEntryCommand{
		sessions: sessions,
		store:    store,
		Draft:    draft,
	}
}

// Validate checks if the create operation is valid
func (c *CreateEntryCommand) Validate() error {
	if err := application.ValidateRequired("title", c.Draft.Title); err != nil {
		return err
	}
	if err := application.ValidateDate("date", c.Draft.Date); err != nil {
		return err
	}
	if err := application.ValidateTime("time", c.Draft.Time); err != nil {
		return err
	}
	return c.Repeat.Validate()
}

// Execute creates one entry per occurrence. Each occurrence is its own write;
// the first failure stops the expansion and the error reports how many were created.
func (c *CreateEntryCommand) Execute(ctx context.Context) (*CreateEntryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}

	dates, err := c.Repeat.Dates(c.Draft.Date)
	if err != nil {
		return nil, err
	}

	kind := c.store.Kind()
	created := make([]domain.DatedEntry, 0, len(dates))
	for _, date := range dates {
		draft := c.Draft
		draft.Date = date
		e, err := c.store.Create(ctx, user, draft)
		if err != nil {
			if len(created) > 0 {
				return &CreateEntryResult{Entries: created}, fmt.Errorf("created %d of %d %ss: %w", len(created), len(dates), kind, err)
			}
			return nil, fmt.Errorf("failed to create %s: %w", kind, err)
		}
		created = append(created, *e)
	}

	msg := fmt.Sprintf("Created %s: %s on %s", kind, created[0].Title, created[0].Date)
	if len(created) > 1 {
		msg = fmt.Sprintf("Created %d %ss: %s from %s to %s", len(created), kind, created[0].Title,
			created[0].Date, created[len(created)-1].Date)
	}
	return &CreateEntryResult{Entries: created, Message: msg}, nil
}

// DeleteEntryResult contains the result of deleting an entry
type DeleteEntryResult struct {
	ID      string
	Message string
}

// DeleteEntryCommand deletes an entry by id
type DeleteEntryCommand struct {
	sessions ports.SessionProvider
	store    *stores.EntryStore
	ID       string
}

// NewDeleteEntryCommand creates a new DeleteEntryCommand
func NewDeleteEntryCommand(sessions ports.SessionProvider, store *stores.EntryStore, id string) *DeleteEntryCommand {
	return &DeleteEntryCommand{sessions: sessions, store: store, ID: id}
}

// Validate checks if the delete operation is valid
func (c *DeleteEntryCommand) Validate() error {
	return application.ValidateRequired("entryID", c.ID)
}

// Execute runs the delete entry command
func (c *DeleteEntryCommand) Execute(ctx context.Context) (*DeleteEntryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}

	if err := c.store.Remove(ctx, user, c.ID); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", c.store.Kind(), err)
	}
	return &DeleteEntryResult{
		ID:      c.ID,
		Message: fmt.Sprintf("Deleted %s: %s", c.store.Kind(), c.ID),
	}, nil
}

// EntryResult contains an entry after a change
type EntryResult struct {
	Entry   *domain.DatedEntry
	Message string
}

// ToggleTaskCommand marks a task done or not done. Without Done it flips
// the current state.
type ToggleTaskCommand struct {
	sessions ports.SessionProvider
	store    *stores.EntryStore
	ID       string
	Done     *bool
}

// NewToggleTaskCommand creates a new ToggleTaskCommand
func NewToggleTaskCommand(sessions ports.SessionProvider, store *stores.EntryStore, id string) *ToggleTaskCommand {
	return &ToggleTaskCommand{sessions: sessions, store: store, ID: id}
}

// Validate checks if the toggle operation is valid
func (c *ToggleTaskCommand) Validate() error {
	if err := application.ValidateRequired("entryID", c.ID); err != nil {
		return err
	}
	if c.store.Kind() != domain.EntryKindTask {
		return &application.ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("only tasks can be marked done, got: %s", c.store.Kind()),
		}
	}
	return nil
}

// Execute runs the toggle task command
func (c *ToggleTaskCommand) Execute(ctx context.Context) (*EntryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}

	var task *domain.DatedEntry
	if c.Done != nil {
		task, err = c.store.SetDone(ctx, user, c.ID, *c.Done)
	} else {
		if _, ok := c.store.Get(c.ID); !ok {
			if err := c.store.Load(ctx, user, stores.Scope{}); err != nil {
				return nil, fmt.Errorf("failed to load tasks: %w", err)
			}
		}
		task, err = c.store.Toggle(ctx, user, c.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	state := "not done"
	if task.Done {
		state = "done"
	}
	return &EntryResult{
		Entry:   task,
		Message: fmt.Sprintf("Marked %s: %s", state, task.Title),
	}, nil
}

// UpdateEntryCommand changes selected fields of an entry
type UpdateEntryCommand struct {
	sessions ports.SessionProvider
	store    *stores.EntryStore
	ID       string
	Patch    domain.EntryPatch
}

// NewUpdateEntryCommand creates a new UpdateEntryCommand
func NewUpdateEntryCommand(sessions ports.SessionProvider, store *stores.EntryStore, id string, patch domain.EntryPatch) *UpdateEntryCommand {
	return &UpdateEntryCommand{sessions: sessions, store: store, ID: id, Patch: patch}
}

// Validate checks if the update operation is valid
func (c *UpdateEntryCommand) Validate() error {
	if err := application.ValidateRequired("entryID", c.ID); err != nil {
		return err
	}
	if c.Patch.IsEmpty() {
		return &application.ValidationError{Field: "patch", Message: "nothing to update"}
	}
	return nil
}

// Execute runs the update entry command
func (c *UpdateEntryCommand) Execute(ctx context.Context) (*EntryResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}

	e, err := c.store.Update(ctx, user, c.ID, c.Patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", c.store.Kind(), err)
	}
	return &EntryResult{
		Entry:   e,
		Message: fmt.Sprintf("Updated %s: %s", c.store.Kind(), e.Title),
	}, nil
}

// ListEntriesCommand lists entries dated within an inclusive range
type ListEntriesCommand struct {
	sessions ports.SessionProvider
	store    *stores.EntryStore
	From     string
	To       string
}

// NewListEntriesCommand creates a new ListEntriesCommand
func NewListEntriesCommand(sessions ports.SessionProvider, store *stores.EntryStore, from, to string) *ListEntriesCommand {
	return &ListEntriesCommand{sessions: sessions, store: store, From: from, To: to}
}

// Validate checks the optional range bounds
func (c *ListEntriesCommand) Validate() error {
	if c.From != "" {
		if err := application.ValidateDate("from", c.From); err != nil {
			return err
		}
	}
	if c.To != "" {
		if err := application.ValidateDate("to", c.To); err != nil {
			return err
		}
	}
	if c.From != "" && c.To != "" && c.From > c.To {
		return &application.ValidationError{Field: "to", Message: "must not be before from"}
	}
	return nil
}

// Execute loads and returns the entries in range ordered by date and time
func (c *ListEntriesCommand) Execute(ctx context.Context) ([]domain.DatedEntry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}

	if err := c.store.Load(ctx, user, stores.Scope{From: c.From, To: c.To}); err != nil {
		return nil, fmt.Errorf("failed to load %ss: %w", c.store.Kind(), err)
	}
	entries := c.store.Entries()
	domain.SortEntries(entries)
	return entries, nil
}
