// Package app wires configuration to concrete adapters for the entrypoints.
package app

import (
	"fmt"

	"daybook/internal/adapters/filesystem"
	"daybook/internal/adapters/ics"
	"daybook/internal/adapters/session"
	"daybook/internal/adapters/sqlite"
	"daybook/internal/application/commands"
	"daybook/internal/config"
	applog "daybook/internal/log"
)

// Open builds the services for cfg. The returned close function releases
// the database.
func Open(cfg *config.Config) (*commands.Services, func() error, error) {
	cfg.Normalize()

	applog.SetLevel(applog.ParseLevel(cfg.LogLevel))

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve db path: %w", err)
	}
	blobPath, err := cfg.BlobPath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve blob dir: %w", err)
	}

	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	applog.Debug("database opened", "path", db.Path())

	svc := commands.NewServices(
		db,
		filesystem.NewBlobStore(blobPath, cfg.BlobBaseURL),
		session.NewStatic(cfg.UserID, cfg.UserEmail),
		ics.NewCodec(loc),
	)
	svc.WeekStart = cfg.WeekStartDay()
	svc.Location = loc
	return svc, db.Close, nil
}
