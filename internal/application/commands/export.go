package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"daybook/internal/application"
	"daybook/internal/application/stores"
	"daybook/internal/domain"
	"daybook/internal/ports"
)

// ExportResult reports how many entries were written
type ExportResult struct {
	Count   int
	Message string
}

// ExportCalendarCommand writes the user's entries in a date range to w
type ExportCalendarCommand struct {
	sessions ports.SessionProvider
	store    *stores.EntryStore
	codec    ports.CalendarCodec
	out      io.Writer
	From     string
	To       string
}

// NewExportCalendarCommand creates a new ExportCalendarCommand
func NewExportCalendarCommand(sessions ports.SessionProvider, store *stores.EntryStore, codec ports.CalendarCodec, out io.Writer) *ExportCalendarCommand {
	return &ExportCalendarCommand{sessions: sessions, store: store, codec: codec, out: out}
}

// Validate checks the optional range bounds
func (c *ExportCalendarCommand) Validate() error {
	return (&ListEntriesCommand{From: c.From, To: c.To}).Validate()
}

// Execute runs the export calendar command
func (c *ExportCalendarCommand) Execute(ctx context.Context) (*ExportResult, error) {
	entries, err := NewListEntriesCommand(c.sessions, c.store, c.From, c.To).Execute(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.codec.Encode(c.out, entries); err != nil {
		return nil, fmt.Errorf("failed to export calendar: %w", err)
	}
	return &ExportResult{
		Count:   len(entries),
		Message: fmt.Sprintf("Exported %d entries", len(entries)),
	}, nil
}

// ImportResult contains the entries created from a calendar file
type ImportResult struct {
	Entries []domain.DatedEntry
	Skipped int
	Message string
}

// ImportCalendarCommand creates calendar entries from the events in a file
type ImportCalendarCommand struct {
	sessions ports.SessionProvider
	store    *stores.EntryStore
	codec    ports.CalendarCodec
	in       io.Reader
	From     string
	To       string
	loc      *time.Location
}

// NewImportCalendarCommand creates a new ImportCalendarCommand. The From and To
// window is interpreted in loc.
func NewImportCalendarCommand(sessions ports.SessionProvider, store *stores.EntryStore, codec ports.CalendarCodec, in io.Reader, loc *time.Location) *ImportCalendarCommand {
	if loc == nil {
		loc = time.Local
	}
	return &ImportCalendarCommand{sessions: sessions, store: store, codec: codec, in: in, loc: loc}
}

// Validate checks the window. Both bounds are given or neither is.
func (c *ImportCalendarCommand) Validate() error {
	if (c.From == "") != (c.To == "") {
		return &application.ValidationError{Field: "to", Message: "from and to must be given together"}
	}
	return (&ListEntriesCommand{From: c.From, To: c.To}).Validate()
}

// Execute decodes the file and creates one entry per draft. It stops at the
// first failed write.
func (c *ImportCalendarCommand) Execute(ctx context.Context) (*ImportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}

	var from, to time.Time
	if c.From != "" {
		from, _ = domain.ParseDate(c.From, c.loc)
		end, _ := domain.ParseDate(c.To, c.loc)
		to = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	drafts, err := c.codec.Decode(c.in, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to import calendar: %w", err)
	}

	res := &ImportResult{}
	for _, d := range drafts {
		e, err := c.store.Create(ctx, user, d)
		if err != nil {
			return res, fmt.Errorf("imported %d of %d entries: %w", len(res.Entries), len(drafts), err)
		}
		if e == nil {
			res.Skipped++
			continue
		}
		res.Entries = append(res.Entries, *e)
	}

	res.Message = fmt.Sprintf("Imported %d entries", len(res.Entries))
	if res.Skipped > 0 {
		res.Message += fmt.Sprintf(" (%d without a title skipped)", res.Skipped)
	}
	return res, nil
}
