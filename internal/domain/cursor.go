package domain

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the zoom level of the calendar view
type Granularity int

const (
	GranularityMonth Granularity = iota
	GranularityWeek
	GranularityDay
)

func (g Granularity) String() string {
	switch g {
	case GranularityDay:
		return "day"
	case GranularityWeek:
		return "week"
	default:
		return "month"
	}
}

// ParseGranularity maps "day", "week" or "month" to a Granularity
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "d":
		return GranularityDay, nil
	case "week", "w":
		return GranularityWeek, nil
	case "month", "m", "":
		return GranularityMonth, nil
	default:
		return GranularityMonth, fmt.Errorf("unknown view %q (expected day, week or month)", s)
	}
}

// Direction is a navigation step through the calendar
type Direction int

const (
	Next Direction = 1
	Prev Direction = -1
)

// Short date layout used in week titles (en-US locale short date)
const shortDateLayout = "1/2/2006"

// Cursor holds the anchor date and granularity of a viewing session.
// It is not persisted; NewCursor starts at today in month view.
type Cursor struct {
	Anchor      time.Time
	Granularity Granularity
	WeekStart   time.Weekday
}

// NewCursor returns a cursor anchored at the start of the current day in month view
func NewCursor(now time.Time) Cursor {
	return Cursor{
		Anchor:      StartOfDay(now),
		Granularity: GranularityMonth,
		WeekStart:   time.Sunday,
	}
}

// Advance returns the anchor date one step away in the given direction.
// Month steps use time.AddDate, so day-of-month overflow normalizes forward
// (Jan 31 + 1 month is Mar 2 or Mar 3).
func (c Cursor) Advance(dir Direction) time.Time {
	n := int(dir)
	switch c.Granularity {
	case GranularityDay:
		return c.Anchor.AddDate(0, 0, n)
	case GranularityWeek:
		return c.Anchor.AddDate(0, 0, 7*n)
	default:
		return c.Anchor.AddDate(0, n, 0)
	}
}

// Step moves the cursor in place and returns it
func (c *Cursor) Step(dir Direction) Cursor {
	c.Anchor = c.Advance(dir)
	return *c
}

// SetGranularity changes the zoom level without touching the anchor
func (c *Cursor) SetGranularity(g Granularity) {
	c.Granularity = g
}

// Today moves the anchor back to the given day
func (c *Cursor) Today(now time.Time) {
	c.Anchor = StartOfDay(now.In(c.Anchor.Location()))
}

// WeekStartDate returns the first day of the week containing the anchor
func (c Cursor) WeekStartDate() time.Time {
	return WeekStartOf(c.Anchor, c.WeekStart)
}

// Title returns the human readable label of the current period
func (c Cursor) Title() string {
	return Title(c.Anchor, c.Granularity, c.WeekStart)
}

// Title formats the label for a period:
//   - day:   "Sunday, March 10, 2024"
//   - week:  "Week of 3/10/2024 - 3/16/2024" (first to last day of the rendered week)
//   - month: "March 2024"
//
// The week range is the grid the week view shows, so an anchor in the middle
// of the week still titles from weekStart rather than from the anchor.
func Title(anchor time.Time, g Granularity, weekStart time.Weekday) string {
	switch g {
	case GranularityDay:
		return anchor.Format("Monday, January 2, 2006")
	case GranularityWeek:
		start := WeekStartOf(anchor, weekStart)
		end := start.AddDate(0, 0, 6)
		return fmt.Sprintf("Week of %s - %s", start.Format(shortDateLayout), end.Format(shortDateLayout))
	default:
		return anchor.Format("January 2006")
	}
}

// WeekStartOf returns the day on or before t that falls on weekStart
func WeekStartOf(t time.Time, weekStart time.Weekday) time.Time {
	offset := (int(t.Weekday()) - int(weekStart) + 7) % 7
	return StartOfDay(t).AddDate(0, 0, -offset)
}
