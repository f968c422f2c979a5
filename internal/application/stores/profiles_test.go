package stores

import (
	"context"
	"errors"
	"slices"
	"testing"

	"daybook/internal/application"
	"daybook/internal/domain"
)

func TestProfileStore_SaveInsertsThenUpdates(t *testing.T) {
	records := newFakeRecordStore()
	s := NewProfileStore(records)
	ctx := context.Background()

	if _, err := s.Get(ctx, alice); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected ErrNotFound before first save, got %v", err)
	}

	p, err := s.Save(ctx, alice, domain.Profile{Name: " Alice ", Bio: "hi"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if p.Name != "Alice" || p.UserID != alice.ID {
		t.Errorf("unexpected profile: %+v", p)
	}
	want := []string{"update profiles", "insert profiles"}
	if got := records.callLog(); !slices.Equal(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}

	records.resetCalls()
	if _, err := s.Save(ctx, alice, domain.Profile{Name: "Al", Avatar: "https://example.com/a.png"}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if got := records.callLog(); !slices.Equal(got, []string{"update profiles"}) {
		t.Errorf("calls = %v", got)
	}

	got, err := s.Get(ctx, alice)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Al" || got.Bio != "" || got.Avatar != "https://example.com/a.png" {
		t.Errorf("unexpected profile after update: %+v", got)
	}
}

func TestProfileStore_SaveRejectsEmptyName(t *testing.T) {
	records := newFakeRecordStore()
	s := NewProfileStore(records)

	_, err := s.Save(context.Background(), alice, domain.Profile{Name: "   "})
	var vErr *application.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Message != "Name cannot be empty" {
		t.Errorf("unexpected message: %q", vErr.Message)
	}
	if len(records.callLog()) != 0 {
		t.Error("expected no remote calls")
	}
}

func TestProfileStore_RequiresUser(t *testing.T) {
	s := NewProfileStore(newFakeRecordStore())
	if _, err := s.Get(context.Background(), domain.User{}); !errors.Is(err, application.ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired, got %v", err)
	}
}
