package ports

import (
	"io"
	"time"

	"daybook/internal/domain"
)

// CalendarCodec converts dated entries to and from an interchange format
type CalendarCodec interface {
	Encode(w io.Writer, entries []domain.DatedEntry) error

	// Decode returns drafts for the events in r. Recurring events are
	// expanded between from and to when both are set.
	Decode(r io.Reader, from, to time.Time) ([]domain.Draft, error)
}
