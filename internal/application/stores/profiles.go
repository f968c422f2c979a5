package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"daybook/internal/application"
	"daybook/internal/domain"
	applog "daybook/internal/log"
	"daybook/internal/ports"
)

// ProfileStore reads and writes the profile row keyed by the user's id
type ProfileStore struct {
	records ports.RecordStore
}

func NewProfileStore(records ports.RecordStore) *ProfileStore {
	return &ProfileStore{records: records}
}

// Get returns the user's profile, or ErrNotFound if none was saved yet
func (s *ProfileStore) Get(ctx context.Context, user domain.User) (*domain.Profile, error) {
	if err := requireUser(user, "get profile"); err != nil {
		return nil, err
	}
	rows, err := s.records.Select(ctx, TableProfiles, ports.Filter{ports.Eq(colID, user.ID)})
	if err != nil {
		applog.Error("failed to load profile", err)
		return nil, application.ReadFailed(TableProfiles, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("profile %s: %w", user.ID, application.ErrNotFound)
	}
	p := profileFromRow(rows[0])
	return &p, nil
}

// Save updates the profile, inserting it on first use
func (s *ProfileStore) Save(ctx context.Context, user domain.User, p domain.Profile) (*domain.Profile, error) {
	if err := requireUser(user, "save profile"); err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, &application.ValidationError{Field: "name", Message: "Name cannot be empty"}
	}

	patch := ports.Row{
		colName:   p.Name,
		colBio:    strings.TrimSpace(p.Bio),
		colAvatar: strings.TrimSpace(p.Avatar),
	}
	stored, err := s.records.Update(ctx, TableProfiles, ports.Filter{ports.Eq(colID, user.ID)}, patch)
	if errors.Is(err, ports.ErrNoRows) {
		patch[colID] = user.ID
		stored, err = s.records.Insert(ctx, TableProfiles, patch)
	}
	if err != nil {
		applog.Error("failed to save profile", err)
		return nil, application.WriteFailed("save", TableProfiles, err)
	}

	out := profileFromRow(stored)
	applog.Debug("profile saved")
	return &out, nil
}
