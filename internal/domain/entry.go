package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

// DateLayout is the calendar date format stored with every dated entry
const DateLayout = "2006-01-02"

// TimeLayout is the time-of-day format stored with timed entries
const TimeLayout = "15:04"

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// EntryKind identifies which flat collection a dated entry belongs to
type EntryKind int

const (
	EntryKindUnknown EntryKind = iota
	EntryKindCalendar
	EntryKindTask
	EntryKindNote
)

func (k EntryKind) String() string {
	switch k {
	case EntryKindCalendar:
		return "calendar"
	case EntryKindTask:
		return "task"
	case EntryKindNote:
		return "note"
	default:
		return "unknown"
	}
}

// Table returns the record store table backing this kind
func (k EntryKind) Table() string {
	switch k {
	case EntryKindCalendar:
		return "calendar_entries"
	case EntryKindTask:
		return "tasks"
	case EntryKindNote:
		return "notes"
	default:
		return ""
	}
}

// ParseEntryKind maps a user supplied name to an EntryKind
func ParseEntryKind(s string) EntryKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "calendar", "event", "events", "entry", "entries":
		return EntryKindCalendar
	case "task", "tasks":
		return EntryKindTask
	case "note", "notes":
		return EntryKindNote
	default:
		return EntryKindUnknown
	}
}

// DatedEntry is a calendar entry, a daily task or a note
type DatedEntry struct {
	ID        string
	Kind      EntryKind
	Title     string
	Content   string // optional
	Date      string // YYYY-MM-DD
	Time      string // HH:MM, empty for untimed entries
	Done      bool   // only meaningful for tasks
	CreatedAt time.Time
}

// HasTime reports whether the entry carries a time of day
func (e DatedEntry) HasTime() bool {
	return e.Time != ""
}

// Day parses the entry date in the given location
func (e DatedEntry) Day(loc *time.Location) (time.Time, error) {
	return ParseDate(e.Date, loc)
}

// Draft holds the caller supplied fields of an entry that does not exist yet
type Draft struct {
	Title   string
	Content string
	Date    string
	Time    string
}

// EntryPatch lists the fields of an entry to change. Nil fields are left untouched.
type EntryPatch struct {
	Title   *string
	Content *string
	Date    *string
	Time    *string
	Done    *bool
}

// IsEmpty reports whether the patch changes nothing
func (p EntryPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Date == nil && p.Time == nil && p.Done == nil
}

// Apply returns a copy of e with the patch fields set
func (p EntryPatch) Apply(e DatedEntry) DatedEntry {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Done != nil {
		e.Done = *p.Done
	}
	return e
}

// ValidTimeOfDay reports whether s is HH:MM in the range 00:00-23:59
func ValidTimeOfDay(s string) bool {
	return timeOfDayRegex.MatchString(s)
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD in its own location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// HourLabel formats an hour of the day as HH:00
func HourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// SortEntries orders entries by date then time of day. Untimed entries come
// first within a date. The sort is stable so creation order breaks ties.
func SortEntries(entries []DatedEntry) {
	slices.SortStableFunc(entries, func(a, b DatedEntry) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return strings.Compare(a.Time, b.Time)
	})
}
