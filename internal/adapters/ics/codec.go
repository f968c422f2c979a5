package ics

import (
	"io"
	"time"

	"daybook/internal/domain"
	"daybook/internal/ports"
)

var _ ports.CalendarCodec = (*Codec)(nil)

// Codec implements ports.CalendarCodec for iCalendar files
type Codec struct {
	Location *time.Location
	Now      func() time.Time
}

// NewCodec creates a codec that interprets dates in loc
func NewCodec(loc *time.Location) *Codec {
	return &Codec{Location: loc, Now: time.Now}
}

func (c *Codec) Encode(w io.Writer, entries []domain.DatedEntry) error {
	return Export(w, entries, c.Location, c.Now())
}

func (c *Codec) Decode(r io.Reader, from, to time.Time) ([]domain.Draft, error) {
	return Parse(r, c.Location, from, to)
}
