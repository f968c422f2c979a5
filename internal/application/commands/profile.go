package commands

import (
	"context"
	"errors"
	"fmt"

	"daybook/internal/application"
	"daybook/internal/application/stores"
	"daybook/internal/domain"
	"daybook/internal/ports"
)

// ProfileResult contains the user's profile
type ProfileResult struct {
	Profile *domain.Profile
	Email   string
	Message string
}

// GetProfileCommand reads the signed in user's profile
type GetProfileCommand struct {
	sessions ports.SessionProvider
	store    *stores.ProfileStore
}

// NewGetProfileCommand creates a new GetProfileCommand
func NewGetProfileCommand(sessions ports.SessionProvider, store *stores.ProfileStore) *GetProfileCommand {
	return &GetProfileCommand{sessions: sessions, store: store}
}

// Execute returns the profile. A user who never saved one gets an empty profile.
func (c *GetProfileCommand) Execute(ctx context.Context) (*ProfileResult, error) {
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}

	p, err := c.store.Get(ctx, user)
	if errors.Is(err, application.ErrNotFound) {
		return &ProfileResult{
			Profile: &domain.Profile{UserID: user.ID},
			Email:   user.Email,
			Message: "No profile saved yet",
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &ProfileResult{Profile: p, Email: user.Email}, nil
}

// UpdateProfileCommand saves name, bio and avatar
type UpdateProfileCommand struct {
	sessions ports.SessionProvider
	store    *stores.ProfileStore
	Profile  domain.Profile
}

// NewUpdateProfileCommand creates a new UpdateProfileCommand
func NewUpdateProfileCommand(sessions ports.SessionProvider, store *stores.ProfileStore, p domain.Profile) *UpdateProfileCommand {
	return &UpdateProfileCommand{sessions: sessions, store: store, Profile: p}
}

// Validate checks the profile has a name
func (c *UpdateProfileCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Profile.Name); err != nil {
		return &application.ValidationError{Field: "name", Message: "Name cannot be empty"}
	}
	return nil
}

// Execute runs the update profile command
func (c *UpdateProfileCommand) Execute(ctx context.Context) (*ProfileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}

	p, err := c.store.Save(ctx, user, c.Profile)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return &ProfileResult{
		Profile: p,
		Email:   user.Email,
		Message: fmt.Sprintf("Updated profile: %s", p.Name),
	}, nil
}
