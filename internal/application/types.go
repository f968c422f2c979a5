package application

import "daybook/internal/domain"

// Re-export entry kinds for use by adapters
type EntryKind = domain.EntryKind

const (
	EntryKindCalendar = domain.EntryKindCalendar
	EntryKindTask     = domain.EntryKindTask
	EntryKindNote     = domain.EntryKindNote
)

// Re-export domain types for use by adapters
type (
	DatedEntry  = domain.DatedEntry
	ListRecord  = domain.ListRecord
	ItemRecord  = domain.ItemRecord
	User        = domain.User
	Profile     = domain.Profile
	Photo       = domain.Photo
	Cursor      = domain.Cursor
	Granularity = domain.Granularity
	Bucket      = domain.Bucket
)

// ParseEntryKind maps a user supplied name to an EntryKind
func ParseEntryKind(s string) EntryKind {
	return domain.ParseEntryKind(s)
}

// ParseGranularity maps "day", "week" or "month" to a Granularity
func ParseGranularity(s string) (Granularity, error) {
	return domain.ParseGranularity(s)
}
