package stores

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"daybook/internal/application"
	"daybook/internal/domain"
	applog "daybook/internal/log"
	"daybook/internal/ports"
)

// ListStore caches the user's lists together with their items. Items are
// fetched for every list in one pass right after the lists, so callers never
// see a partially assembled structure.
type ListStore struct {
	records ports.RecordStore
	now     func() time.Time

	mu     sync.Mutex
	lists  []domain.ListRecord
	loaded bool
}

// NewListStore creates an empty, not yet loaded list cache
func NewListStore(records ports.RecordStore) *ListStore {
	return &ListStore{records: records, now: time.Now}
}

// Load fetches the user's lists oldest first, then all their items oldest
// first, and replaces the cache. On failure the previous cache is kept.
func (s *ListStore) Load(ctx context.Context, user domain.User) error {
	if err := requireUser(user, "load lists"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx, user)
}

func (s *ListStore) loadLocked(ctx context.Context, user domain.User) error {
	listRows, err := s.records.Select(ctx, TableLists, ports.Filter{ports.Eq(colUserID, user.ID)},
		ports.Asc(colCreatedAt), ports.Asc(colID))
	if err != nil {
		applog.Error("failed to load lists", err)
		return application.ReadFailed(TableLists, err)
	}

	lists := make([]domain.ListRecord, 0, len(listRows))
	byID := make(map[int64]int, len(listRows))
	ids := make([]int64, 0, len(listRows))
	for _, r := range listRows {
		l := listFromRow(r)
		byID[l.ID] = len(lists)
		ids = append(ids, l.ID)
		lists = append(lists, l)
	}

	if len(ids) > 0 {
		itemRows, err := s.records.Select(ctx, TableItems, ports.Filter{ports.In(colListID, ids)},
			ports.Asc(colCreatedAt), ports.Asc(colID))
		if err != nil {
			applog.Error("failed to load items", err, "lists", len(ids))
			return application.ReadFailed(TableItems, err)
		}
		for _, r := range itemRows {
			it := itemFromRow(r)
			if i, ok := byID[it.ListID]; ok {
				lists[i].Items = append(lists[i].Items, it)
			}
		}
	}

	s.lists = lists
	s.loaded = true
	applog.Debug("lists loaded", "count", len(lists))
	return nil
}

// Loaded reports whether the lists and their items have been assembled
func (s *ListStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Lists returns deep copies of the cached lists in creation order
func (s *ListStore) Lists() []domain.ListRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ListRecord, len(s.lists))
	for i, l := range s.lists {
		out[i] = l.Clone()
	}
	return out
}

// List returns a copy of the cached list with the given id
func (s *ListStore) List(id int64) (domain.ListRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.lists[i].Clone(), true
	}
	return domain.ListRecord{}, false
}

// CreateList inserts a list and appends it with no items. An empty name is
// rejected without contacting the store and returns a nil list.
func (s *ListStore) CreateList(ctx context.Context, user domain.User, name string) (*domain.ListRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	if err := requireUser(user, "create list"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.records.Insert(ctx, TableLists, ports.Row{
		colUserID:    user.ID,
		colName:      name,
		colCreatedAt: s.now().UTC(),
	})
	if err != nil {
		applog.Error("failed to create list", err, "name", name)
		return nil, application.WriteFailed("insert", TableLists, err)
	}

	l := listFromRow(stored)
	s.lists = append(s.lists, l)
	applog.Debug("list created", "id", l.ID)

	out := l.Clone()
	return &out, nil
}

// DeleteList removes a list and all of its items. Stores that support
// transactions do it atomically. Otherwise items are deleted first, and if
// the list delete then fails the returned CascadeError reports the
// inconsistency and the cache is reloaded from the store.
func (s *ListStore) DeleteList(ctx context.Context, user domain.User, id int64) error {
	if err := requireUser(user, "delete list"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.owned(id, user) < 0 {
		return fmt.Errorf("list %d: %w", id, application.ErrNotFound)
	}

	parent := ports.Filter{ports.Eq(colID, id), ports.Eq(colUserID, user.ID)}
	children := ports.Filter{ports.Eq(colListID, id)}

	if cd, ok := s.records.(ports.CascadeDeleter); ok {
		err := cd.DeleteCascade(ctx, ports.Cascade{
			ParentTable:  TableLists,
			ParentFilter: parent,
			ChildTable:   TableItems,
			ChildFilter:  children,
		})
		if err != nil {
			applog.Error("failed to delete list", err, "id", id)
			return &application.CascadeError{ListID: id, Err: application.WriteFailed("delete", TableLists, err)}
		}
	} else {
		if err := s.records.Delete(ctx, TableItems, children); err != nil {
			applog.Error("failed to delete list items", err, "id", id)
			return &application.CascadeError{ListID: id, Err: application.WriteFailed("delete", TableItems, err)}
		}
		if err := s.records.Delete(ctx, TableLists, parent); err != nil {
			applog.Error("list items deleted but list remains", err, "id", id)
			cerr := &application.CascadeError{
				ListID:          id,
				ChildrenDeleted: true,
				Err:             application.WriteFailed("delete", TableLists, err),
			}
			if rerr := s.loadLocked(ctx, user); rerr != nil {
				return errors.Join(cerr, fmt.Errorf("resync failed: %w", rerr))
			}
			return cerr
		}
	}

	if i := s.index(id); i >= 0 {
		s.lists = slices.Delete(s.lists, i, i+1)
	}
	applog.Debug("list deleted", "id", id)
	return nil
}

// AddItem inserts an item into a list and appends it to the cached list.
// The write is issued even when the list is not cached, as long as the store
// confirms the list belongs to user; the item then shows up on the next Load.
// Lists owned by anyone else are ErrNotFound. An empty title is a no-op that
// returns a nil item.
func (s *ListStore) AddItem(ctx context.Context, user domain.User, listID int64, title string) (*domain.ItemRecord, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}
	if err := requireUser(user, "add item"); err != nil {
		return nil, err
	}
	if err := application.ValidateID("listID", listID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(ctx, user, listID); err != nil {
		return nil, err
	}

	stored, err := s.records.Insert(ctx, TableItems, ports.Row{
		colListID:    listID,
		colTitle:     title,
		colDone:      false,
		colCreatedAt: s.now().UTC(),
	})
	if err != nil {
		applog.Error("failed to add item", err, "list", listID)
		return nil, application.WriteFailed("insert", TableItems, err)
	}

	it := itemFromRow(stored)
	if i := s.index(listID); i >= 0 {
		s.lists[i].Items = append(s.lists[i].Items, it)
	}
	applog.Debug("item added", "list", listID, "id", it.ID)
	return &it, nil
}

// DeleteItem removes an item from its list. The list must belong to user.
func (s *ListStore) DeleteItem(ctx context.Context, user domain.User, listID, itemID int64) error {
	if err := requireUser(user, "delete item"); err != nil {
		return err
	}
	if err := application.ValidateID("itemID", itemID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireOwner(ctx, user, listID); err != nil {
		return err
	}

	err := s.records.Delete(ctx, TableItems, ports.Filter{ports.Eq(colID, itemID), ports.Eq(colListID, listID)})
	if err != nil {
		applog.Error("failed to delete item", err, "list", listID, "id", itemID)
		return application.WriteFailed("delete", TableItems, err)
	}

	if i := s.index(listID); i >= 0 {
		s.lists[i].Items = slices.DeleteFunc(s.lists[i].Items, func(it domain.ItemRecord) bool {
			return it.ID == itemID
		})
	}
	applog.Debug("item deleted", "list", listID, "id", itemID)
	return nil
}

// ToggleItem flips the done flag of a cached item and replaces the cached
// record with the row the store returns. Only the done column is written.
func (s *ListStore) ToggleItem(ctx context.Context, user domain.User, listID, itemID int64) (*domain.ItemRecord, error) {
	if err := requireUser(user, "toggle item"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	li := s.owned(listID, user)
	if li < 0 {
		return nil, fmt.Errorf("list %d: %w", listID, application.ErrNotFound)
	}
	ii := slices.IndexFunc(s.lists[li].Items, func(it domain.ItemRecord) bool { return it.ID == itemID })
	if ii < 0 {
		return nil, fmt.Errorf("item %d: %w", itemID, application.ErrNotFound)
	}

	done := !s.lists[li].Items[ii].Done
	stored, err := s.records.Update(ctx, TableItems,
		ports.Filter{ports.Eq(colID, itemID), ports.Eq(colListID, listID)},
		ports.Row{colDone: done})
	if errors.Is(err, ports.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", itemID, application.ErrNotFound)
	}
	if err != nil {
		applog.Error("failed to toggle item", err, "list", listID, "id", itemID)
		return nil, application.WriteFailed("update", TableItems, err)
	}

	it := itemFromRow(stored)
	s.lists[li].Items[ii] = it
	applog.Debug("item toggled", "list", listID, "id", itemID, "done", it.Done)
	return &it, nil
}

// requireOwner checks that listID is one of user's lists, asking the store
// when the cache does not hold it. Callers hold s.mu.
func (s *ListStore) requireOwner(ctx context.Context, user domain.User, listID int64) error {
	if s.owned(listID, user) >= 0 {
		return nil
	}
	rows, err := s.records.Select(ctx, TableLists, ports.Filter{ports.Eq(colID, listID), ports.Eq(colUserID, user.ID)})
	if err != nil {
		applog.Error("failed to look up list owner", err, "list", listID)
		return application.ReadFailed(TableLists, err)
	}
	if len(rows) == 0 {
		applog.Debug("list not owned by user", "list", listID, "user", user.ID)
		return fmt.Errorf("list %d: %w", listID, application.ErrNotFound)
	}
	return nil
}

// owned is the cache index of list id when it belongs to user, -1 otherwise
func (s *ListStore) owned(id int64, user domain.User) int {
	i := s.index(id)
	if i < 0 || s.lists[i].Owner != user.ID {
		return -1
	}
	return i
}

func (s *ListStore) index(id int64) int {
	return slices.IndexFunc(s.lists, func(l domain.ListRecord) bool { return l.ID == id })
}
