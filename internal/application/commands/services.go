package commands

import (
	"fmt"
	"time"

	"daybook/internal/application/stores"
	"daybook/internal/domain"
	"daybook/internal/ports"
)

// Services bundles the stores and collaborators every front end works with.
// One Services value lives for the whole process so caches are shared.
type Services struct {
	Sessions ports.SessionProvider
	Calendar *stores.EntryStore
	Tasks    *stores.EntryStore
	Notes    *stores.EntryStore
	Lists    *stores.ListStore
	Photos   *stores.PhotoStore
	Profiles *stores.ProfileStore
	Codec    ports.CalendarCodec

	WeekStart time.Weekday
	Location  *time.Location
	Now       func() time.Time
}

// NewServices creates the stores over one record store
func NewServices(records ports.RecordStore, blobs ports.BlobStorage, sessions ports.SessionProvider, codec ports.CalendarCodec) *Services {
	return &Services{
		Sessions:  sessions,
		Calendar:  stores.NewEntryStore(records, domain.EntryKindCalendar),
		Tasks:     stores.NewEntryStore(records, domain.EntryKindTask),
		Notes:     stores.NewEntryStore(records, domain.EntryKindNote),
		Lists:     stores.NewListStore(records),
		Photos:    stores.NewPhotoStore(records, blobs),
		Profiles:  stores.NewProfileStore(records),
		Codec:     codec,
		WeekStart: time.Sunday,
		Location:  time.Local,
		Now:       time.Now,
	}
}

// Entries returns the store for kind
func (s *Services) Entries(kind domain.EntryKind) (*stores.EntryStore, error) {
	switch kind {
	case domain.EntryKindCalendar:
		return s.Calendar, nil
	case domain.EntryKindTask:
		return s.Tasks, nil
	case domain.EntryKindNote:
		return s.Notes, nil
	default:
		return nil, fmt.Errorf("unknown entry kind (expected calendar, task or note)")
	}
}

// EntryStores returns every entry store in display order
func (s *Services) EntryStores() []*stores.EntryStore {
	return []*stores.EntryStore{s.Calendar, s.Tasks, s.Notes}
}

// Cursor returns a cursor at today in month view honoring the configured week start
func (s *Services) Cursor() domain.Cursor {
	c := domain.NewCursor(s.Now().In(s.Location))
	c.WeekStart = s.WeekStart
	return c
}

// ParseDate reads a YYYY-MM-DD date in the configured location. An empty
// string means today.
func (s *Services) ParseDate(v string) (time.Time, error) {
	if v == "" {
		return domain.StartOfDay(s.Now().In(s.Location)), nil
	}
	return domain.ParseDate(v, s.Location)
}
