package commands

import (
	"context"
	"testing"

	"daybook/internal/application/stores"
	"daybook/internal/domain"
)

func TestProfileCommands(t *testing.T) {
	store := stores.NewProfileStore(openTestDB(t))
	ctx := context.Background()

	got, err := NewGetProfileCommand(signedIn(), store).Execute(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Profile.Name != "" || got.Email != "alice@example.com" || got.Message != "No profile saved yet" {
		t.Errorf("unexpected empty profile: %+v", got)
	}

	updated, err := NewUpdateProfileCommand(signedIn(), store, domain.Profile{Name: "Alice", Bio: "Gardener"}).Execute(ctx)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Message != "Updated profile: Alice" {
		t.Errorf("unexpected message: %q", updated.Message)
	}

	got, err = NewGetProfileCommand(signedIn(), store).Execute(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Profile.Name != "Alice" || got.Profile.Bio != "Gardener" {
		t.Errorf("unexpected profile: %+v", got.Profile)
	}
}

func TestUpdateProfileCommand_EmptyName(t *testing.T) {
	err := (&UpdateProfileCommand{Profile: domain.Profile{Name: "  "}}).Validate()
	if err == nil || !contains(err.Error(), "Name cannot be empty") {
		t.Errorf("unexpected error: %v", err)
	}
}
