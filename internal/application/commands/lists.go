package commands

import (
	"context"
	"fmt"

	"daybook/internal/application"
	"daybook/internal/application/stores"
	"daybook/internal/domain"
	"daybook/internal/ports"
)

// ensureLoaded loads the list store the first time a command needs it
func ensureLoaded(ctx context.Context, store *stores.ListStore, user domain.User) error {
	if store.Loaded() {
		return nil
	}
	if err := store.Load(ctx, user); err != nil {
		return fmt.Errorf("failed to load lists: %w", err)
	}
	return nil
}

// ListResult contains a list after a change
type ListResult struct {
	List    *domain.ListRecord
	Message string
}

// CreateListCommand creates an empty list
type CreateListCommand struct {
	sessions ports.SessionProvider
	store    *stores.ListStore
	Name     string
}

// NewCreateListCommand creates a new CreateListCommand
func NewCreateListCommand(sessions ports.SessionProvider, store *stores.ListStore, name string) *CreateListCommand {
	return &CreateListCommand{sessions: sessions, store: store, Name: name}
}

// Validate checks if the create operation is valid
func (c *CreateListCommand) Validate() error {
	return application.ValidateRequired("name", c.Name)
}

// Execute runs the create list command
func (c *CreateListCommand) Execute(ctx context.Context) (*ListResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}

	l, err := c.store.CreateList(ctx, user, c.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	return &ListResult{
		List:    l,
		Message: fmt.Sprintf("Created list: %d %s", l.ID, l.Name),
	}, nil
}

// DeleteListResult contains the result of deleting a list
type DeleteListResult struct {
	ID      int64
	Name    string
	Items   int
	Message string
}

// DeleteListCommand deletes a list and every item it holds
type DeleteListCommand struct {
	sessions ports.SessionProvider
	store    *stores.ListStore
	ID       int64
}

// NewDeleteListCommand creates a new DeleteListCommand
func NewDeleteListCommand(sessions ports.SessionProvider, store *stores.ListStore, id int64) *DeleteListCommand {
	return &DeleteListCommand{sessions: sessions, store: store, ID: id}
}

// Validate checks if the delete operation is valid
func (c *DeleteListCommand) Validate() error {
	return application.ValidateID("listID", c.ID)
}

// Execute runs the delete list command
func (c *DeleteListCommand) Execute(ctx context.Context) (*DeleteListResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}
	if err := ensureLoaded(ctx, c.store, user); err != nil {
		return nil, err
	}

	l, _ := c.store.List(c.ID)
	if err := c.store.DeleteList(ctx, user, c.ID); err != nil {
		return nil, fmt.Errorf("failed to delete list: %w", err)
	}
	return &DeleteListResult{
		ID:      c.ID,
		Name:    l.Name,
		Items:   len(l.Items),
		Message: fmt.Sprintf("Deleted list: %s (%d items)", l.Name, len(l.Items)),
	}, nil
}

// ItemResult contains an item after a change
type ItemResult struct {
	Item    *domain.ItemRecord
	Message string
}

// AddItemCommand appends an item to a list
type AddItemCommand struct {
	sessions ports.SessionProvider
	store    *stores.ListStore
	ListID   int64
	Title    string
}

// NewAddItemCommand creates a new AddItemCommand
func NewAddItemCommand(sessions ports.SessionProvider, store *stores.ListStore, listID int64, title string) *AddItemCommand {
	return &AddItemCommand{sessions: sessions, store: store, ListID: listID, Title: title}
}

// Validate checks if the add operation is valid
func (c *AddItemCommand) Validate() error {
	if err := application.ValidateID("listID", c.ListID); err != nil {
		return err
	}
	return application.ValidateRequired("title", c.Title)
}

// Execute runs the add item command
func (c *AddItemCommand) Execute(ctx context.Context) (*ItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}
	if err := ensureLoaded(ctx, c.store, user); err != nil {
		return nil, err
	}

	it, err := c.store.AddItem(ctx, user, c.ListID, c.Title)
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}
	return &ItemResult{
		Item:    it,
		Message: fmt.Sprintf("Added item: %d %s", it.ID, it.Title),
	}, nil
}

// DeleteItemCommand removes an item from a list
type DeleteItemCommand struct {
	sessions ports.SessionProvider
	store    *stores.ListStore
	ListID   int64
	ItemID   int64
}

// NewDeleteItemCommand creates a new DeleteItemCommand
func NewDeleteItemCommand(sessions ports.SessionProvider, store *stores.ListStore, listID, itemID int64) *DeleteItemCommand {
	return &DeleteItemCommand{sessions: sessions, store: store, ListID: listID, ItemID: itemID}
}

// Validate checks if the delete operation is valid
func (c *DeleteItemCommand) Validate() error {
	if err := application.ValidateID("listID", c.ListID); err != nil {
		return err
	}
	return application.ValidateID("itemID", c.ItemID)
}

// Execute runs the delete item command
func (c *DeleteItemCommand) Execute(ctx context.Context) (*ItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}
	if err := ensureLoaded(ctx, c.store, user); err != nil {
		return nil, err
	}

	if err := c.store.DeleteItem(ctx, user, c.ListID, c.ItemID); err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}
	return &ItemResult{Message: fmt.Sprintf("Deleted item: %d", c.ItemID)}, nil
}

// ToggleItemCommand flips the done state of an item
type ToggleItemCommand struct {
	sessions ports.SessionProvider
	store    *stores.ListStore
	ListID   int64
	ItemID   int64
}

// NewToggleItemCommand creates a new ToggleItemCommand
func NewToggleItemCommand(sessions ports.SessionProvider, store *stores.ListStore, listID, itemID int64) *ToggleItemCommand {
	return &ToggleItemCommand{sessions: sessions, store: store, ListID: listID, ItemID: itemID}
}

// Validate checks if the toggle operation is valid
func (c *ToggleItemCommand) Validate() error {
	if err := application.ValidateID("listID", c.ListID); err != nil {
		return err
	}
	return application.ValidateID("itemID", c.ItemID)
}

// Execute runs the toggle item command
func (c *ToggleItemCommand) Execute(ctx context.Context) (*ItemResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}
	if err := ensureLoaded(ctx, c.store, user); err != nil {
		return nil, err
	}

	it, err := c.store.ToggleItem(ctx, user, c.ListID, c.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle item: %w", err)
	}
	state := "not done"
	if it.Done {
		state = "done"
	}
	return &ItemResult{
		Item:    it,
		Message: fmt.Sprintf("Marked %s: %s", state, it.Title),
	}, nil
}

// ShowListsCommand returns the user's lists with their items
type ShowListsCommand struct {
	sessions ports.SessionProvider
	store    *stores.ListStore
	ListID   int64 // zero shows every list
	Reload   bool
}

// NewShowListsCommand creates a new ShowListsCommand
func NewShowListsCommand(sessions ports.SessionProvider, store *stores.ListStore) *ShowListsCommand {
	return &ShowListsCommand{sessions: sessions, store: store}
}

// Execute runs the show lists command
func (c *ShowListsCommand) Execute(ctx context.Context) ([]domain.ListRecord, error) {
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}
	if c.Reload {
		if err := c.store.Load(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to load lists: %w", err)
		}
	} else if err := ensureLoaded(ctx, c.store, user); err != nil {
		return nil, err
	}

	if c.ListID == 0 {
		return c.store.Lists(), nil
	}
	l, ok := c.store.List(c.ListID)
	if !ok {
		return nil, fmt.Errorf("list %d: %w", c.ListID, application.ErrNotFound)
	}
	return []domain.ListRecord{l}, nil
}
