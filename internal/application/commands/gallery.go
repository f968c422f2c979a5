package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"daybook/internal/application"
	"daybook/internal/application/stores"
	"daybook/internal/domain"
	"daybook/internal/ports"
)

// PhotoResult contains a photo after it was added
type PhotoResult struct {
	Photo   *domain.Photo
	Message string
}

// AddPhotoCommand adds a photo from a URL or by uploading a local file
type AddPhotoCommand struct {
	sessions ports.SessionProvider
	store    *stores.PhotoStore
	URL      string
	File     string
	Title    string
}

// NewAddPhotoCommand creates a new AddPhotoCommand. Exactly one of url and file must be set.
func NewAddPhotoCommand(sessions ports.SessionProvider, store *stores.PhotoStore, url, file, title string) *AddPhotoCommand {
	return &AddPhotoCommand{sessions: sessions, store: store, URL: url, File: file, Title: title}
}

// Validate checks that exactly one source is given
func (c *AddPhotoCommand) Validate() error {
	if (c.URL == "") == (c.File == "") {
		return &application.ValidationError{Field: "source", Message: "provide either a URL or a file"}
	}
	return nil
}

// Execute runs the add photo command
func (c *AddPhotoCommand) Execute(ctx context.Context) (*PhotoResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}

	var p *domain.Photo
	if c.URL != "" {
		p, err = c.store.AddURL(ctx, user, c.URL, c.Title)
	} else {
		f, ferr := os.Open(c.File)
		if ferr != nil {
			return nil, fmt.Errorf("failed to open photo: %w", ferr)
		}
		defer f.Close()
		p, err = c.store.Upload(ctx, user, filepath.Base(c.File), f, c.Title)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add photo: %w", err)
	}
	return &PhotoResult{
		Photo:   p,
		Message: fmt.Sprintf("Added photo: %d %s", p.ID, p.Title),
	}, nil
}

// ListPhotosCommand lists the user's gallery, newest first
type ListPhotosCommand struct {
	sessions ports.SessionProvider
	store    *stores.PhotoStore
}

// NewListPhotosCommand creates a new ListPhotosCommand
func NewListPhotosCommand(sessions ports.SessionProvider, store *stores.PhotoStore) *ListPhotosCommand {
	return &ListPhotosCommand{sessions: sessions, store: store}
}

// Execute runs the list photos command
func (c *ListPhotosCommand) Execute(ctx context.Context) ([]domain.Photo, error) {
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}
	photos, err := c.store.List(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

// DeletePhotoCommand removes a photo and its uploaded file
type DeletePhotoCommand struct {
	sessions ports.SessionProvider
	store    *stores.PhotoStore
	ID       int64
}

// NewDeletePhotoCommand creates a new DeletePhotoCommand
func NewDeletePhotoCommand(sessions ports.SessionProvider, store *stores.PhotoStore, id int64) *DeletePhotoCommand {
	return &DeletePhotoCommand{sessions: sessions, store: store, ID: id}
}

// Validate checks if the delete operation is valid
func (c *DeletePhotoCommand) Validate() error {
	return application.ValidateID("photoID", c.ID)
}

// Execute runs the delete photo command
func (c *DeletePhotoCommand) Execute(ctx context.Context) (*PhotoResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	user, err := stores.CurrentUser(ctx, c.sessions)
	if err != nil {
		return nil, err
	}
	if err := c.store.Delete(ctx, user, c.ID); err != nil {
		return nil, fmt.Errorf("failed to delete photo: %w", err)
	}
	return &PhotoResult{Message: fmt.Sprintf("Deleted photo: %d", c.ID)}, nil
}
