package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"daybook/internal/application"
	"daybook/internal/application/stores"
	"daybook/internal/domain"
)

func TestCalendarViewCommand_MonthMergesStores(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	events := stores.NewEntryStore(db, domain.EntryKindCalendar)
	tasks := stores.NewEntryStore(db, domain.EntryKindTask)

	for _, d := range []struct {
		store *stores.EntryStore
		draft domain.Draft
	}{
		{events, domain.Draft{Title: "Dentist", Date: "2024-03-15", Time: "10:00"}},
		{tasks, domain.Draft{Title: "Taxes", Date: "2024-03-15"}},
		{events, domain.Draft{Title: "Leading day", Date: "2024-02-26"}},
		{events, domain.Draft{Title: "Out of grid", Date: "2024-04-20"}},
	} {
		if _, err := NewCreateEntryCommand(signedIn(), d.store, d.draft).Execute(ctx); err != nil {
			t.Fatalf("create %q failed: %v", d.draft.Title, err)
		}
	}

	res, err := NewCalendarViewCommand(signedIn(), cursorAt(t, "2024-03-15"), events, tasks).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Title != "March 2024" {
		t.Errorf("Title = %q", res.Title)
	}
	if res.Scope != (stores.Scope{From: "2024-02-25", To: "2024-04-06"}) {
		t.Errorf("Scope = %+v", res.Scope)
	}

	byDate := map[string]int{}
	total := 0
	for _, b := range res.Buckets {
		byDate[b.Date] = len(b.Entries)
		total += len(b.Entries)
	}
	if byDate["2024-03-15"] != 2 {
		t.Errorf("expected 2 entries on 2024-03-15, got %d", byDate["2024-03-15"])
	}
	if byDate["2024-02-26"] != 1 {
		t.Errorf("expected leading day entry, got %d", byDate["2024-02-26"])
	}
	if total != 3 {
		t.Errorf("expected 3 entries in grid, got %d", total)
	}
}

func TestCalendarViewCommand_DayPlacesByHour(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	events := stores.NewEntryStore(db, domain.EntryKindCalendar)
	if _, err := NewCreateEntryCommand(signedIn(), events, domain.Draft{Title: "Coffee", Date: "2024-03-10", Time: "09:30"}).Execute(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cursor := cursorAt(t, "2024-03-10")
	cursor.SetGranularity(domain.GranularityDay)
	res, err := NewCalendarViewCommand(signedIn(), cursor, events).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(res.Buckets) != domain.HoursPerDay {
		t.Fatalf("expected %d buckets, got %d", domain.HoursPerDay, len(res.Buckets))
	}
	nine := res.Buckets[9-domain.FirstHour]
	if nine.Label != "09:00" || len(nine.Entries) != 1 {
		t.Errorf("expected Coffee in 09:00 bucket, got %+v", nine)
	}
	if res.Title != "Sunday, March 10, 2024" {
		t.Errorf("Title = %q", res.Title)
	}
}

func TestCalendarViewCommand_RequiresSession(t *testing.T) {
	events := stores.NewEntryStore(openTestDB(t), domain.EntryKindCalendar)
	_, err := NewCalendarViewCommand(signedOut(), cursorAt(t, "2024-03-10"), events).Execute(context.Background())
	if !errors.Is(err, application.ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired, got %v", err)
	}
}

func TestCalendarViewCommand_Validate(t *testing.T) {
	err := NewCalendarViewCommand(signedIn(), domain.Cursor{}).Validate()
	if err == nil {
		t.Error("expected error for zero anchor")
	}
}

func TestCellDraft(t *testing.T) {
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	hours := domain.Build(day, domain.GranularityDay, nil)

	d := CellDraft("Call", hours[0])
	if d.Date != "2024-03-10" || d.Time != "06:00" {
		t.Errorf("unexpected draft for first hour: %+v", d)
	}

	last := CellDraft("Late", hours[len(hours)-1])
	if last.Time != "" {
		t.Errorf("24:00 cell should create an untimed entry, got %q", last.Time)
	}

	month := domain.Build(day, domain.GranularityMonth, nil)
	if md := CellDraft("All day", month[0]); md.Time != "" || md.Date != "2024-02-25" {
		t.Errorf("unexpected draft for month cell: %+v", md)
	}
}

func TestRebuildUsesCache(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	events := stores.NewEntryStore(db, domain.EntryKindCalendar)
	if _, err := NewCreateEntryCommand(signedIn(), events, domain.Draft{Title: "Cached", Date: "2024-03-11"}).Execute(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cursor := cursorAt(t, "2024-03-10")
	cursor.SetGranularity(domain.GranularityWeek)
	buckets := Rebuild(cursor, events)
	if len(buckets) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(buckets))
	}
	if len(buckets[1].Entries) != 1 || buckets[1].Entries[0].Title != "Cached" {
		t.Errorf("expected cached entry on Monday, got %+v", buckets[1].Entries)
	}
}
