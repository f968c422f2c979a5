package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"daybook/internal/application/stores"
	"daybook/internal/domain"
	"daybook/internal/ports"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "daybook.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return s
}

func insertList(t *testing.T, s *Store, user, name string) int64 {
	t.Helper()
	r, err := s.Insert(context.Background(), "lists", ports.Row{
		"user_id": user, "name": name, "created_at": time.Now(),
	})
	if err != nil {
		t.Fatalf("insert list failed: %v", err)
	}
	return r["id"].(int64)
}

func insertItem(t *testing.T, s *Store, listID int64, title string, created time.Time) int64 {
	t.Helper()
	r, err := s.Insert(context.Background(), "items", ports.Row{
		"list_id": listID, "title": title, "done": false, "created_at": created,
	})
	if err != nil {
		t.Fatalf("insert item failed: %v", err)
	}
	return r["id"].(int64)
}

func TestStore_InsertReturnsTypedRow(t *testing.T) {
	s := openTestStore(t)
	created := time.Date(2024, 3, 10, 9, 30, 0, 123, time.UTC)

	r, err := s.Insert(context.Background(), "tasks", ports.Row{
		"id": "t-1", "user_id": "u1", "title": "Stretch", "date": "2024-03-10",
		"done": false, "created_at": created,
	})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if r["id"] != "t-1" || r["title"] != "Stretch" || r["content"] != "" || r["time"] != "" {
		t.Errorf("unexpected row %v", r)
	}
	if r["done"] != false {
		t.Errorf("expected done=false, got %v (%T)", r["done"], r["done"])
	}
	if ts, ok := r["created_at"].(time.Time); !ok || !ts.Equal(created) {
		t.Errorf("expected created_at %v, got %v", created, r["created_at"])
	}
}

func TestStore_AssignsIncreasingIDs(t *testing.T) {
	s := openTestStore(t)

	first := insertList(t, s, "u1", "Groceries")
	second := insertList(t, s, "u1", "Packing")

	if first != 1 || second != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", first, second)
	}
}

func TestStore_SelectFiltersAndOrders(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for _, r := range []ports.Row{
		{"id": "a", "user_id": "u1", "title": "A", "date": "2024-03-12", "time": "", "created_at": time.Now()},
		{"id": "b", "user_id": "u1", "title": "B", "date": "2024-03-10", "time": "14:00", "created_at": time.Now()},
		{"id": "c", "user_id": "u1", "title": "C", "date": "2024-03-10", "time": "08:00", "created_at": time.Now()},
		{"id": "d", "user_id": "u2", "title": "D", "date": "2024-03-10", "time": "", "created_at": time.Now()},
		{"id": "e", "user_id": "u1", "title": "E", "date": "2024-04-01", "time": "", "created_at": time.Now()},
	} {
		if _, err := s.Insert(ctx, "calendar_entries", r); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter ports.Filter
		order  []ports.Order
		want   []string
	}{
		{
			name:   "owner and date range",
			filter: ports.Filter{ports.Eq("user_id", "u1"), ports.Gte("date", "2024-03-01"), ports.Lte("date", "2024-03-31")},
			order:  []ports.Order{ports.Asc("date"), ports.Asc("time")},
			want:   []string{"c", "b", "a"},
		},
		{
			name:   "in list descending",
			filter: ports.Filter{ports.In("id", []string{"a", "d", "e"})},
			order:  []ports.Order{ports.Desc("id")},
			want:   []string{"e", "d", "a"},
		},
		{
			name:   "empty in matches nothing",
			filter: ports.Filter{ports.In("id", []string{})},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := s.Select(ctx, "calendar_entries", tt.filter, tt.order...)
			if err != nil {
				t.Fatalf("Select failed: %v", err)
			}
			var got []string
			for _, r := range rows {
				got = append(got, r["id"].(string))
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestStore_UpdateSingleRow(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	listID := insertList(t, s, "u1", "Groceries")
	milk := insertItem(t, s, listID, "Milk", time.Now())
	insertItem(t, s, listID, "Eggs", time.Now())

	r, err := s.Update(ctx, "items", ports.Filter{ports.Eq("id", milk), ports.Eq("list_id", listID)}, ports.Row{"done": true})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if r["done"] != true || r["title"] != "Milk" {
		t.Errorf("unexpected row %v", r)
	}

	rows, _ := s.Select(ctx, "items", ports.Filter{ports.Eq("done", true)})
	if len(rows) != 1 {
		t.Errorf("expected exactly one done item, got %d", len(rows))
	}

	// a filter matching several rows still updates one
	if _, err := s.Update(ctx, "items", ports.Filter{ports.Eq("list_id", listID)}, ports.Row{"title": "Same"}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	rows, _ = s.Select(ctx, "items", ports.Filter{ports.Eq("title", "Same")})
	if len(rows) != 1 {
		t.Errorf("expected one renamed item, got %d", len(rows))
	}
}

func TestStore_UpdateErrors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Update(ctx, "items", ports.Filter{ports.Eq("id", int64(99))}, ports.Row{"done": true})
	if !errors.Is(err, ports.ErrNoRows) {
		t.Errorf("expected ErrNoRows, got %v", err)
	}
	if _, err := s.Update(ctx, "items", nil, ports.Row{"done": true}); err == nil {
		t.Error("expected error for update without filter")
	}
	if _, err := s.Update(ctx, "items", ports.Filter{ports.Eq("id", int64(1))}, ports.Row{"id": int64(2)}); err == nil {
		t.Error("expected error when patching id")
	}
}

func TestStore_Delete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	listID := insertList(t, s, "u1", "Groceries")

	if err := s.Delete(ctx, "lists", ports.Filter{ports.Eq("id", int64(42))}); err != nil {
		t.Errorf("deleting nothing should succeed, got %v", err)
	}
	if err := s.Delete(ctx, "lists", nil); err == nil {
		t.Error("expected error for delete without filter")
	}
	if err := s.Delete(ctx, "lists", ports.Filter{ports.Eq("id", listID)}); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	rows, _ := s.Select(ctx, "lists", nil)
	if len(rows) != 0 {
		t.Errorf("expected no lists, got %d", len(rows))
	}
}

func TestStore_RejectsUnknownNames(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Select(ctx, "users; DROP TABLE lists", nil); err == nil {
		t.Error("expected error for unknown table")
	}
	if _, err := s.Select(ctx, "lists", ports.Filter{ports.Eq("name OR 1=1", "x")}); err == nil {
		t.Error("expected error for unknown filter column")
	}
	if _, err := s.Select(ctx, "lists", nil, ports.Asc("random()")); err == nil {
		t.Error("expected error for unknown order column")
	}
	if _, err := s.Insert(ctx, "lists", ports.Row{"user_id": "u1", "name": "x", "created_at": time.Now(), "extra": 1}); err == nil {
		t.Error("expected error for unknown insert column")
	}
}

func TestStore_ItemsRequireExistingList(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Insert(context.Background(), "items", ports.Row{
		"list_id": int64(7), "title": "Orphan", "done": false, "created_at": time.Now(),
	})
	if err == nil {
		t.Error("expected foreign key failure")
	}
}

func TestStore_DeleteCascade(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	keep := insertList(t, s, "u1", "Packing")
	gone := insertList(t, s, "u1", "Groceries")
	insertItem(t, s, gone, "Milk", time.Now())
	insertItem(t, s, gone, "Eggs", time.Now())
	insertItem(t, s, keep, "Socks", time.Now())

	err := s.DeleteCascade(ctx, ports.Cascade{
		ParentTable:  "lists",
		ParentFilter: ports.Filter{ports.Eq("id", gone), ports.Eq("user_id", "u1")},
		ChildTable:   "items",
		ChildFilter:  ports.Filter{ports.Eq("list_id", gone)},
	})
	if err != nil {
		t.Fatalf("DeleteCascade failed: %v", err)
	}

	lists, _ := s.Select(ctx, "lists", nil)
	items, _ := s.Select(ctx, "items", nil)
	if len(lists) != 1 || lists[0]["id"] != keep {
		t.Errorf("expected only list %d, got %v", keep, lists)
	}
	if len(items) != 1 || items[0]["title"] != "Socks" {
		t.Errorf("expected only Socks, got %v", items)
	}
}

func TestStore_DeleteCascadeRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	listID := insertList(t, s, "u1", "Groceries")
	insertItem(t, s, listID, "Milk", time.Now())

	err := s.DeleteCascade(ctx, ports.Cascade{
		ParentTable:  "lists",
		ParentFilter: nil, // rejected after the children are deleted
		ChildTable:   "items",
		ChildFilter:  ports.Filter{ports.Eq("list_id", listID)},
	})
	if err == nil {
		t.Fatal("expected error")
	}

	items, _ := s.Select(ctx, "items", nil)
	if len(items) != 1 {
		t.Errorf("expected child delete to be rolled back, got %d items", len(items))
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daybook.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	insertList(t, s, "u1", "Groceries")
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()
	rows, _ := s.Select(context.Background(), "lists", nil)
	if len(rows) != 1 || rows[0]["name"] != "Groceries" {
		t.Errorf("expected persisted list, got %v", rows)
	}
}

func TestStore_BacksListStore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	user := domain.User{ID: "u1"}
	lists := stores.NewListStore(s)

	list, err := lists.CreateList(ctx, user, "Groceries")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	item, err := lists.AddItem(ctx, user, list.ID, "Milk")
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := lists.ToggleItem(ctx, user, list.ID, item.ID); err != nil {
		t.Fatalf("ToggleItem failed: %v", err)
	}

	fresh := stores.NewListStore(s)
	if err := fresh.Load(ctx, user); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, ok := fresh.List(list.ID)
	if !ok || len(got.Items) != 1 || !got.Items[0].Done {
		t.Fatalf("expected reloaded done Milk, got %+v", got)
	}

	if err := fresh.DeleteList(ctx, user, list.ID); err != nil {
		t.Fatalf("DeleteList failed: %v", err)
	}
	items, _ := s.Select(ctx, "items", ports.Filter{ports.Eq("list_id", list.ID)})
	if len(items) != 0 {
		t.Errorf("expected items to be deleted with the list, got %d", len(items))
	}
}

func TestStore_ListStoreKeepsItemsWithTheirOwner(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	bob := domain.User{ID: "u-bob"}
	eve := domain.User{ID: "u-eve"}
	lists := stores.NewListStore(s)

	list, err := lists.CreateList(ctx, bob, "Private")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	secret, err := lists.AddItem(ctx, bob, list.ID, "secret")
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := lists.DeleteItem(ctx, eve, list.ID, secret.ID); err == nil {
		t.Error("expected delete from another user's list to fail")
	}
	if _, err := lists.AddItem(ctx, eve, list.ID, "injected"); err == nil {
		t.Error("expected add to another user's list to fail")
	}

	fresh := stores.NewListStore(s)
	if err := fresh.Load(ctx, bob); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, _ := fresh.List(list.ID)
	if len(got.Items) != 1 || got.Items[0].Title != "secret" {
		t.Errorf("expected only the owner's item, got %+v", got.Items)
	}
}

// BenchmarkSelectEntries benchmarks a month of entries for one user
func BenchmarkSelectEntries(b *testing.B) {
	s, err := Open(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3000; i++ {
		d := day.AddDate(0, 0, i%90)
		_, err := s.Insert(ctx, "calendar_entries", ports.Row{
			"id": fmt.Sprintf("e%d", i), "user_id": "u1", "title": "entry",
			"date": domain.FormatDate(d), "time": "09:00", "created_at": d,
		})
		if err != nil {
			b.Fatalf("insert failed: %v", err)
		}
	}

	filter := ports.Filter{ports.Eq("user_id", "u1"), ports.Gte("date", "2024-03-01"), ports.Lte("date", "2024-03-31")}
	b.ResetTimer()
	for b.Loop() {
		if _, err := s.Select(ctx, "calendar_entries", filter, ports.Asc("date"), ports.Asc("time")); err != nil {
			b.Fatalf("select failed: %v", err)
		}
	}
}
