// Package stores holds the in-memory caches that reconcile against the record store.
// Every cache mutation happens only after the record store acknowledged the write.
package stores

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"daybook/internal/application"
	"daybook/internal/domain"
	applog "daybook/internal/log"
	"daybook/internal/ports"
)

// Scope bounds an entry load by inclusive YYYY-MM-DD dates. Empty bounds are open.
type Scope struct {
	From string
	To   string
}

// ScopeFor returns the scope covering the given buckets
func ScopeFor(buckets []domain.Bucket) Scope {
	if len(buckets) == 0 {
		return Scope{}
	}
	return Scope{From: buckets[0].Date, To: buckets[len(buckets)-1].Date}
}

func (s Scope) filter(userID string) ports.Filter {
	f := ports.Filter{ports.Eq(colUserID, userID)}
	if s.From != "" {
		f = append(f, ports.Gte(colDate, s.From))
	}
	if s.To != "" {
		f = append(f, ports.Lte(colDate, s.To))
	}
	return f
}

// EntryStore caches the dated entries of one kind for the signed in user.
// Operations are serialized so each one starts from the previous acknowledged state.
type EntryStore struct {
	records ports.RecordStore
	kind    domain.EntryKind
	table   string
	newID   func() string
	now     func() time.Time

	mu      sync.Mutex
	entries []domain.DatedEntry
	loaded  bool
}

// NewEntryStore creates an entry cache backed by the kind's table
func NewEntryStore(records ports.RecordStore, kind domain.EntryKind) *EntryStore {
	return &EntryStore{
		records: records,
		kind:    kind,
		table:   kind.Table(),
		newID:   func() string { return uuid.New().String() },
		now:     time.Now,
	}
}

// Kind returns the kind of entry held by the store
func (s *EntryStore) Kind() domain.EntryKind {
	return s.kind
}

// Load replaces the cache with the user's entries in scope. On failure the
// previous cache is kept.
func (s *EntryStore) Load(ctx context.Context, user domain.User, scope Scope) error {
	if err := requireUser(user, "load "+s.table); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.records.Select(ctx, s.table, scope.filter(user.ID),
		ports.Asc(colDate), ports.Asc(colTime), ports.Asc(colCreatedAt))
	if err != nil {
		applog.Error("failed to load entries", err, "table", s.table)
		return application.ReadFailed(s.table, err)
	}

	entries := make([]domain.DatedEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, entryFromRow(s.kind, r))
	}
	s.entries = entries
	s.loaded = true

	applog.Debug("entries loaded", "table", s.table, "count", len(entries), "from", scope.From, "to", scope.To)
	return nil
}

// Loaded reports whether a load has succeeded
func (s *EntryStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Entries returns a copy of the cached entries
func (s *EntryStore) Entries() []domain.DatedEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Get returns the cached entry with the given id
func (s *EntryStore) Get(id string) (domain.DatedEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.index(id); i >= 0 {
		return s.entries[i], true
	}
	return domain.DatedEntry{}, false
}

// InRange returns the cached entries dated within [from, to], sorted by date and time
func (s *EntryStore) InRange(from, to time.Time) []domain.DatedEntry {
	lo, hi := domain.FormatDate(from), domain.FormatDate(to)

	s.mu.Lock()
	var out []domain.DatedEntry
	for _, e := range s.entries {
		if e.Date >= lo && e.Date <= hi {
			out = append(out, e)
		}
	}
	s.mu.Unlock()

	domain.SortEntries(out)
	return out
}

// Create stores a new entry and caches it once the write is acknowledged.
// An empty title is a no-op that returns a nil entry.
func (s *EntryStore) Create(ctx context.Context, user domain.User, draft domain.Draft) (*domain.DatedEntry, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return nil, nil
	}
	if err := requireUser(user, "create "+s.kind.String()); err != nil {
		return nil, err
	}
	if err := application.ValidateDate("date", draft.Date); err != nil {
		return nil, err
	}
	if err := application.ValidateTime("time", draft.Time); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := ports.Row{
		colID:        s.newID(),
		colUserID:    user.ID,
		colTitle:     title,
		colContent:   draft.Content,
		colDate:      draft.Date,
		colTime:      draft.Time,
		colDone:      false,
		colCreatedAt: s.now().UTC(),
	}
	stored, err := s.records.Insert(ctx, s.table, row)
	if err != nil {
		applog.Error("failed to create entry", err, "table", s.table)
		return nil, application.WriteFailed("insert", s.table, err)
	}

	entry := entryFromRow(s.kind, stored)
	s.entries = append(s.entries, entry)

	applog.Debug("entry created", "table", s.table, "id", entry.ID, "date", entry.Date)
	return &entry, nil
}

// Remove deletes an entry. Deleting an entry that no longer exists succeeds.
func (s *EntryStore) Remove(ctx context.Context, user domain.User, id string) error {
	if err := requireUser(user, "delete "+s.kind.String()); err != nil {
		return err
	}
	if err := application.ValidateRequired("entryID", id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.records.Delete(ctx, s.table, ports.Filter{ports.Eq(colID, id), ports.Eq(colUserID, user.ID)})
	if err != nil {
		applog.Error("failed to delete entry", err, "table", s.table, "id", id)
		return application.WriteFailed("delete", s.table, err)
	}

	if i := s.index(id); i >= 0 {
		s.entries = slices.Delete(s.entries, i, i+1)
	}
	applog.Debug("entry deleted", "table", s.table, "id", id)
	return nil
}

// SetDone marks an entry done or not done
func (s *EntryStore) SetDone(ctx context.Context, user domain.User, id string, done bool) (*domain.DatedEntry, error) {
	return s.Update(ctx, user, id, domain.EntryPatch{Done: &done})
}

// Toggle flips the done flag of a cached entry, starting from its last
// acknowledged state
func (s *EntryStore) Toggle(ctx context.Context, user domain.User, id string) (*domain.DatedEntry, error) {
	if err := requireUser(user, "toggle "+s.kind.String()); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%s %s: %w", s.kind, id, application.ErrNotFound)
	}
	done := !s.entries[i].Done
	return s.updateLocked(ctx, user, id, domain.EntryPatch{Done: &done})
}

// Update changes only the patched fields and replaces the cached entry with
// the row the store returns
func (s *EntryStore) Update(ctx context.Context, user domain.User, id string, patch domain.EntryPatch) (*domain.DatedEntry, error) {
	if err := requireUser(user, "update "+s.kind.String()); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(ctx, user, id, patch)
}

func (s *EntryStore) updateLocked(ctx context.Context, user domain.User, id string, patch domain.EntryPatch) (*domain.DatedEntry, error) {
	if err := application.ValidateRequired("entryID", id); err != nil {
		return nil, err
	}
	row, err := patchRow(patch)
	if err != nil {
		return nil, err
	}
	if len(row) == 0 {
		if i := s.index(id); i >= 0 {
			e := s.entries[i]
			return &e, nil
		}
		return nil, fmt.Errorf("%s %s: %w", s.kind, id, application.ErrNotFound)
	}

	stored, err := s.records.Update(ctx, s.table, ports.Filter{ports.Eq(colID, id), ports.Eq(colUserID, user.ID)}, row)
	if errors.Is(err, ports.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", s.kind, id, application.ErrNotFound)
	}
	if err != nil {
		applog.Error("failed to update entry", err, "table", s.table, "id", id)
		return nil, application.WriteFailed("update", s.table, err)
	}

	entry := entryFromRow(s.kind, stored)
	if i := s.index(id); i >= 0 {
		s.entries[i] = entry
	}
	applog.Debug("entry updated", "table", s.table, "id", id)
	return &entry, nil
}

func (s *EntryStore) index(id string) int {
	return slices.IndexFunc(s.entries, func(e domain.DatedEntry) bool { return e.ID == id })
}

// patchRow validates a patch and turns it into the columns to write
func patchRow(p domain.EntryPatch) (ports.Row, error) {
	row := ports.Row{}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if err := application.ValidateRequired("title", title); err != nil {
			return nil, err
		}
		row[colTitle] = title
	}
	if p.Content != nil {
		row[colContent] = *p.Content
	}
	if p.Date != nil {
		if err := application.ValidateDate("date", *p.Date); err != nil {
			return nil, err
		}
		row[colDate] = *p.Date
	}
	if p.Time != nil {
		if err := application.ValidateTime("time", *p.Time); err != nil {
			return nil, err
		}
		row[colTime] = *p.Time
	}
	if p.Done != nil {
		row[colDone] = *p.Done
	}
	return row, nil
}
