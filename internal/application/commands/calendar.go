package commands

import (
	"context"
	"fmt"

	"daybook/internal/application/stores"
	"daybook/internal/domain"
	"daybook/internal/ports"
)

// CalendarViewResult is one rendered calendar period
type CalendarViewResult struct {
	Cursor  domain.Cursor
	Title   string
	Buckets []domain.Bucket
	Scope   stores.Scope
}

// CalendarViewCommand loads the entries of the period around the cursor and
// places them into grid buckets
type CalendarViewCommand struct {
	sessions ports.SessionProvider
	stores   []*stores.EntryStore
	Cursor   domain.Cursor
}

// NewCalendarViewCommand creates a view over the given entry stores. Entries of
// every store are merged into one grid.
func NewCalendarViewCommand(sessions ports.SessionProvider, cursor domain.Cursor, entryStores ...*stores.EntryStore) *CalendarViewCommand {
	return &CalendarViewCommand{
		sessions: sessions,
		stores:   entryStores,
		Cursor:   cursor,
	}
}

// Validate checks the cursor has an anchor date
func (c *CalendarViewCommand) Validate() error {
	if c.Cursor.Anchor.IsZero() {
		return fmt.Errorf("calendar view needs an anchor date")
	}
	return nil
}

// Execute loads every store for the grid's date range and builds the grid
func (c *CalendarViewCommand) Execute(ctx context.Context) (*CalendarViewResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}

	builder := domain.GridBuilder{WeekStart: c.Cursor.WeekStart}
	scope := stores.ScopeFor(builder.Build(c.Cursor.Anchor, c.Cursor.Granularity, nil))

	var entries []domain.DatedEntry
	for _, s := range c.stores {
		if err := s.Load(ctx, user, scope); err != nil {
			return nil, fmt.Errorf("failed to load %ss: %w", s.Kind(), err)
		}
		entries = append(entries, s.Entries()...)
	}

	return &CalendarViewResult{
		Cursor:  c.Cursor,
		Title:   c.Cursor.Title(),
		Buckets: builder.Build(c.Cursor.Anchor, c.Cursor.Granularity, entries),
		Scope:   scope,
	}, nil
}

// Rebuild places the cached entries of the stores into the cursor's grid
// without contacting the record store
func Rebuild(cursor domain.Cursor, entryStores ...*stores.EntryStore) []domain.Bucket {
	var entries []domain.DatedEntry
	for _, s := range entryStores {
		entries = append(entries, s.Entries()...)
	}
	return domain.GridBuilder{WeekStart: cursor.WeekStart}.Build(cursor.Anchor, cursor.Granularity, entries)
}

// CellDraft returns the draft for an entry created from a grid cell. Hour
// cells prefill the time as HH:00; the 24:00 row has no valid time and
// creates an untimed entry.
func CellDraft(title string, b domain.Bucket) domain.Draft {
	d := domain.Draft{Title: title, Date: b.Date}
	if b.Span == domain.SpanHour && b.Hour < domain.LastHour {
		d.Time = domain.HourLabel(b.Hour)
	}
	return d
}
