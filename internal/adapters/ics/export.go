// Package ics converts dated entries to and from iCalendar (RFC 5545).
package ics

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"daybook/internal/domain"
)

const productID = "-//daybook//calendar export//EN"

// TimedEventDuration is the length given to entries that carry a time of day
const TimedEventDuration = time.Hour

// Export writes entries as a VCALENDAR. Timed entries become one hour events
// in loc; untimed entries become all-day events.
func Export(w io.Writer, entries []domain.DatedEntry, loc *time.Location, now time.Time) error {
	if loc == nil {
		loc = time.Local
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range entries {
		day, err := domain.ParseDate(e.Date, loc)
		if err != nil {
			return fmt.Errorf("entry %s: %w", e.ID, err)
		}

		ev := cal.AddEvent(e.ID + "@daybook")
		ev.SetDtStampTime(now.UTC())
		if !e.CreatedAt.IsZero() {
			ev.SetCreatedTime(e.CreatedAt.UTC())
		}
		ev.SetSummary(e.Title)
		if e.Content != "" {
			ev.SetDescription(e.Content)
		}

		if !e.HasTime() {
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
			continue
		}

		tod, err := time.Parse(domain.TimeLayout, e.Time)
		if err != nil {
			return fmt.Errorf("entry %s: invalid time %q", e.ID, e.Time)
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, loc)
		ev.SetStartAt(start.UTC())
		ev.SetEndAt(start.Add(TimedEventDuration).UTC())
	}

	return cal.SerializeTo(w)
}
