package stores

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"daybook/internal/application"
	"daybook/internal/domain"
	"daybook/internal/ports"
)

var alice = domain.User{ID: "u-alice", Email: "alice@example.com"}

func newTestEntryStore(records ports.RecordStore, kind domain.EntryKind) *EntryStore {
	s := NewEntryStore(records, kind)
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("e%d", n)
	}
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		base = base.Add(time.Second)
		return base
	}
	return s
}

func entryRow(id, user, title, date, tod string) ports.Row {
	return ports.Row{
		"id": id, "user_id": user, "title": title, "content": "",
		"date": date, "time": tod, "done": false,
		"created_at": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestEntryStore_CreateEmptyTitleIsNoop(t *testing.T) {
	records := newFakeRecordStore()
	s := newTestEntryStore(records, domain.EntryKindCalendar)

	for _, title := range []string{"", "   "} {
		got, err := s.Create(context.Background(), alice, domain.Draft{Title: title, Date: "2024-03-10", Time: "09:00"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != nil {
			t.Errorf("expected no entry, got %+v", got)
		}
	}

	if calls := records.callLog(); len(calls) != 0 {
		t.Errorf("expected no remote calls, got %v", calls)
	}
	if n := len(s.Entries()); n != 0 {
		t.Errorf("expected empty cache, got %d entries", n)
	}
}

func TestEntryStore_Create(t *testing.T) {
	records := newFakeRecordStore()
	s := newTestEntryStore(records, domain.EntryKindCalendar)

	got, err := s.Create(context.Background(), alice, domain.Draft{
		Title: "  Dentist ", Content: "bring card", Date: "2024-03-10", Time: "09:30",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if got.ID != "e1" || got.Title != "Dentist" || got.Kind != domain.EntryKindCalendar {
		t.Errorf("unexpected entry %+v", got)
	}
	if calls := records.callLog(); !slices.Equal(calls, []string{"insert calendar_entries"}) {
		t.Errorf("unexpected calls %v", calls)
	}
	if rows := records.rows("calendar_entries"); len(rows) != 1 || rows[0]["user_id"] != alice.ID {
		t.Errorf("expected one row owned by alice, got %v", rows)
	}
	if entries := s.Entries(); len(entries) != 1 || entries[0].ID != "e1" {
		t.Errorf("expected cached entry, got %v", entries)
	}
}

func TestEntryStore_CreateFailureLeavesCache(t *testing.T) {
	records := newFakeRecordStore()
	records.fail["insert tasks"] = errBoom
	s := newTestEntryStore(records, domain.EntryKindTask)

	_, err := s.Create(context.Background(), alice, domain.Draft{Title: "Pay rent", Date: "2024-03-10"})

	if !errors.Is(err, application.ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
	if !errors.Is(err, errBoom) {
		t.Errorf("expected cause to be wrapped, got %v", err)
	}
	if n := len(s.Entries()); n != 0 {
		t.Errorf("failed write must not be cached, got %d entries", n)
	}
}

func TestEntryStore_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		user  domain.User
		draft domain.Draft
		want  error
	}{
		{
			name:  "no session",
			user:  domain.User{},
			draft: domain.Draft{Title: "x", Date: "2024-03-10"},
			want:  application.ErrAuthRequired,
		},
		{
			name:  "bad date",
			user:  alice,
			draft: domain.Draft{Title: "x", Date: "2024-13-01"},
		},
		{
			name:  "bad time",
			user:  alice,
			draft: domain.Draft{Title: "x", Date: "2024-03-10", Time: "25:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := newFakeRecordStore()
			s := newTestEntryStore(records, domain.EntryKindCalendar)

			_, err := s.Create(context.Background(), tt.user, tt.draft)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			var valErr *application.ValidationError
			if tt.want == nil && !errors.As(err, &valErr) {
				t.Errorf("expected ValidationError, got %T", err)
			}
			if calls := records.callLog(); len(calls) != 0 {
				t.Errorf("expected no remote calls, got %v", calls)
			}
		})
	}
}

func TestEntryStore_Load(t *testing.T) {
	records := newFakeRecordStore()
	records.seed("notes",
		entryRow("n2", alice.ID, "Later", "2024-03-12", ""),
		entryRow("n1", alice.ID, "Earlier", "2024-03-11", ""),
		entryRow("n3", "u-bob", "Not mine", "2024-03-11", ""),
		entryRow("n4", alice.ID, "Out of scope", "2024-04-01", ""),
	)
	s := newTestEntryStore(records, domain.EntryKindNote)

	if err := s.Load(context.Background(), alice, Scope{From: "2024-03-01", To: "2024-03-31"}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var ids []string
	for _, e := range s.Entries() {
		ids = append(ids, e.ID)
	}
	if !slices.Equal(ids, []string{"n1", "n2"}) {
		t.Errorf("expected [n1 n2], got %v", ids)
	}
	if !s.Loaded() {
		t.Error("expected store to be loaded")
	}
}

func TestEntryStore_LoadFailureKeepsCache(t *testing.T) {
	records := newFakeRecordStore()
	records.seed("tasks", entryRow("t1", alice.ID, "Stretch", "2024-03-10", ""))
	s := newTestEntryStore(records, domain.EntryKindTask)
	if err := s.Load(context.Background(), alice, Scope{}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	records.fail["select tasks"] = errBoom
	err := s.Load(context.Background(), alice, Scope{})

	if !errors.Is(err, application.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if errors.Is(err, application.ErrWriteFailed) {
		t.Error("read failure must not be reported as a write failure")
	}
	if n := len(s.Entries()); n != 1 {
		t.Errorf("expected previous cache to survive, got %d entries", n)
	}
}

func TestEntryStore_Remove(t *testing.T) {
	records := newFakeRecordStore()
	records.seed("tasks", entryRow("t1", alice.ID, "Stretch", "2024-03-10", ""))
	s := newTestEntryStore(records, domain.EntryKindTask)
	ctx := context.Background()
	if err := s.Load(ctx, alice, Scope{}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := s.Remove(ctx, alice, "t1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if n := len(s.Entries()); n != 0 {
		t.Errorf("expected entry removed from cache, got %d", n)
	}

	t.Run("already gone is not an error", func(t *testing.T) {
		if err := s.Remove(ctx, alice, "t1"); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("failure keeps cache", func(t *testing.T) {
		created, err := s.Create(ctx, alice, domain.Draft{Title: "Read", Date: "2024-03-10"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		records.fail["delete tasks"] = errBoom
		if err := s.Remove(ctx, alice, created.ID); !errors.Is(err, application.ErrWriteFailed) {
			t.Errorf("expected ErrWriteFailed, got %v", err)
		}
		if _, ok := s.Get(created.ID); !ok {
			t.Error("entry must stay cached after a failed delete")
		}
	})
}

func TestEntryStore_ToggleUsesAcknowledgedState(t *testing.T) {
	records := newFakeRecordStore()
	s := newTestEntryStore(records, domain.EntryKindTask)
	ctx := context.Background()

	task, err := s.Create(ctx, alice, domain.Draft{Title: "Water plants", Date: "2024-03-10"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	records.resetCalls()

	first, err := s.Toggle(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	second, err := s.Toggle(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}

	if !first.Done || second.Done {
		t.Errorf("expected done=true then done=false, got %v then %v", first.Done, second.Done)
	}
	if calls := records.callLog(); !slices.Equal(calls, []string{"update tasks", "update tasks"}) {
		t.Errorf("unexpected calls %v", calls)
	}
	if got, _ := s.Get(task.ID); got.Done || got.Title != "Water plants" {
		t.Errorf("unexpected cached task %+v", got)
	}
}

func TestEntryStore_ToggleFailureLeavesCache(t *testing.T) {
	records := newFakeRecordStore()
	s := newTestEntryStore(records, domain.EntryKindTask)
	ctx := context.Background()
	task, _ := s.Create(ctx, alice, domain.Draft{Title: "Water plants", Date: "2024-03-10"})

	records.fail["update tasks"] = errBoom
	if _, err := s.Toggle(ctx, alice, task.ID); !errors.Is(err, application.ErrWriteFailed) {
		t.Fatalf("expected ErrWriteFailed, got %v", err)
	}
	if got, _ := s.Get(task.ID); got.Done {
		t.Error("failed toggle must not change the cache")
	}
}

func TestEntryStore_UpdateWritesOnlyPatchedFields(t *testing.T) {
	records := newFakeRecordStore()
	s := newTestEntryStore(records, domain.EntryKindCalendar)
	ctx := context.Background()
	e, _ := s.Create(ctx, alice, domain.Draft{Title: "Gym", Content: "legs", Date: "2024-03-10", Time: "07:00"})

	when := "18:30"
	got, err := s.Update(ctx, alice, e.ID, domain.EntryPatch{Time: &when})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if got.Time != "18:30" || got.Title != "Gym" || got.Content != "legs" || got.ID != e.ID {
		t.Errorf("unexpected entry after update %+v", got)
	}
	if cached, _ := s.Get(e.ID); cached != *got {
		t.Errorf("cache not replaced with acknowledged row: %+v", cached)
	}
}

func TestEntryStore_UpdateErrors(t *testing.T) {
	records := newFakeRecordStore()
	s := newTestEntryStore(records, domain.EntryKindCalendar)
	ctx := context.Background()

	done := true
	if _, err := s.Update(ctx, alice, "missing", domain.EntryPatch{Done: &done}); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Toggle(ctx, alice, "missing"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound for uncached toggle, got %v", err)
	}

	blank := " "
	records.resetCalls()
	_, err := s.Update(ctx, alice, "e1", domain.EntryPatch{Title: &blank})
	var valErr *application.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
	if calls := records.callLog(); len(calls) != 0 {
		t.Errorf("expected no remote calls, got %v", calls)
	}
}

func TestEntryStore_InRange(t *testing.T) {
	records := newFakeRecordStore()
	records.seed("calendar_entries",
		entryRow("c3", alice.ID, "c", "2024-03-16", "10:00"),
		entryRow("c1", alice.ID, "a", "2024-03-10", "12:00"),
		entryRow("c2", alice.ID, "b", "2024-03-10", "08:00"),
		entryRow("c4", alice.ID, "d", "2024-03-17", "08:00"),
	)
	s := newTestEntryStore(records, domain.EntryKindCalendar)
	if err := s.Load(context.Background(), alice, Scope{}); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	got := s.InRange(from, from.AddDate(0, 0, 6))

	var ids []string
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	if !slices.Equal(ids, []string{"c2", "c1", "c3"}) {
		t.Errorf("expected [c2 c1 c3], got %v", ids)
	}
}

func TestScopeFor(t *testing.T) {
	from := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	buckets := domain.Build(from, domain.GranularityMonth, nil)
	scope := ScopeFor(buckets)
	if scope.From != "2024-02-25" || scope.To != "2024-04-06" {
		t.Errorf("unexpected scope %+v", scope)
	}
	if (ScopeFor(nil) != Scope{}) {
		t.Error("expected open scope for no buckets")
	}
}
