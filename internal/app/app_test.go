package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"daybook/internal/application/commands"
	"daybook/internal/config"
	"daybook/internal/domain"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		DB:        filepath.Join(dir, "db", "daybook.db"),
		BlobDir:   filepath.Join(dir, "blobs"),
		UserID:    "u1",
		WeekStart: "Monday",
		Timezone:  "UTC",
	}

	svc, closeFn, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer closeFn()

	if svc.WeekStart != time.Monday {
		t.Errorf("WeekStart = %v, want Monday", svc.WeekStart)
	}
	if svc.Location.String() != "UTC" {
		t.Errorf("Location = %v", svc.Location)
	}
	if svc.Cursor().WeekStart != time.Monday {
		t.Error("cursor should use the configured week start")
	}

	ctx := context.Background()
	if _, err := commands.NewCreateEntryCommand(svc.Sessions, svc.Tasks, domain.Draft{Title: "Wired", Date: "2024-03-10"}).Execute(ctx); err != nil {
		t.Fatalf("create through services failed: %v", err)
	}
}

func TestOpen_InvalidTimezone(t *testing.T) {
	cfg := &config.Config{DB: filepath.Join(t.TempDir(), "d.db"), Timezone: "Nowhere/Land"}
	if _, _, err := Open(cfg); err == nil {
		t.Fatal("expected error for invalid timezone")
	}
}
