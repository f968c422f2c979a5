package stores

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"daybook/internal/application"
	"daybook/internal/domain"
	applog "daybook/internal/log"
	"daybook/internal/ports"
)

// PhotoStore manages the user's gallery. Photos are read through on every
// call; uploaded files live in blob storage under the owner's id.
type PhotoStore struct {
	records ports.RecordStore
	blobs   ports.BlobStorage
	now     func() time.Time
}

// NewPhotoStore creates a gallery store. blobs may be nil, in which case only
// photos referenced by URL can be added.
func NewPhotoStore(records ports.RecordStore, blobs ports.BlobStorage) *PhotoStore {
	return &PhotoStore{records: records, blobs: blobs, now: time.Now}
}

// List returns the user's photos, newest first
func (s *PhotoStore) List(ctx context.Context, user domain.User) ([]domain.Photo, error) {
	if err := requireUser(user, "list photos"); err != nil {
		return nil, err
	}
	rows, err := s.records.Select(ctx, TablePhotos,
		ports.Filter{ports.Eq(colUserID, user.ID)},
		ports.Desc(colUploadedAt), ports.Desc(colID))
	if err != nil {
		applog.Error("failed to load photos", err)
		return nil, application.ReadFailed(TablePhotos, err)
	}
	photos := make([]domain.Photo, 0, len(rows))
	for _, r := range rows {
		photos = append(photos, photoFromRow(r))
	}
	return photos, nil
}

// AddURL records a photo hosted elsewhere
func (s *PhotoStore) AddURL(ctx context.Context, user domain.User, url, title string) (*domain.Photo, error) {
	if err := requireUser(user, "add photo"); err != nil {
		return nil, err
	}
	return s.insert(ctx, user, url, title, "")
}

// Upload copies r into blob storage at {userID}/{unixMillis}{ext} and records
// the photo with the blob's public URL. The blob is removed again when the
// record cannot be written.
func (s *PhotoStore) Upload(ctx context.Context, user domain.User, filename string, r io.Reader, title string) (*domain.Photo, error) {
	if err := requireUser(user, "upload photo"); err != nil {
		return nil, err
	}
	if s.blobs == nil {
		return nil, errors.New("blob storage is not configured")
	}

	key := BlobKey(user.ID, filename, s.now())
	if err := s.blobs.Put(ctx, key, r); err != nil {
		applog.Error("failed to store photo file", err, "key", key)
		return nil, application.WriteFailed("put", "blobs", err)
	}

	p, err := s.insert(ctx, user, s.blobs.PublicURL(key), title, key)
	if err != nil {
		if derr := s.blobs.Delete(ctx, key); derr != nil {
			applog.Error("failed to remove orphaned photo file", derr, "key", key)
		}
		return nil, err
	}
	return p, nil
}

// Delete removes the photo record, then its blob if it has one. A blob that
// cannot be removed is logged, not returned.
func (s *PhotoStore) Delete(ctx context.Context, user domain.User, id int64) error {
	if err := requireUser(user, "delete photo"); err != nil {
		return err
	}
	filter := ports.Filter{ports.Eq(colID, id), ports.Eq(colUserID, user.ID)}

	rows, err := s.records.Select(ctx, TablePhotos, filter)
	if err != nil {
		applog.Error("failed to load photo", err, "id", id)
		return application.ReadFailed(TablePhotos, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("photo %d: %w", id, application.ErrNotFound)
	}
	p := photoFromRow(rows[0])

	if err := s.records.Delete(ctx, TablePhotos, filter); err != nil {
		applog.Error("failed to delete photo", err, "id", id)
		return application.WriteFailed("delete", TablePhotos, err)
	}

	if p.BlobKey != "" && s.blobs != nil {
		if err := s.blobs.Delete(ctx, p.BlobKey); err != nil {
			applog.Error("failed to delete photo file", err, "key", p.BlobKey)
		}
	}
	applog.Debug("photo deleted", "id", id)
	return nil
}

func (s *PhotoStore) insert(ctx context.Context, user domain.User, url, title, blobKey string) (*domain.Photo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = domain.DefaultPhotoTitle
	}
	stored, err := s.records.Insert(ctx, TablePhotos, ports.Row{
		colUserID:     user.ID,
		colURL:        url,
		colTitle:      title,
		colBlobKey:    blobKey,
		colUploadedAt: s.now().UTC(),
	})
	if err != nil {
		applog.Error("failed to add photo", err)
		return nil, application.WriteFailed("insert", TablePhotos, err)
	}
	p := photoFromRow(stored)
	applog.Debug("photo added", "id", p.ID)
	return &p, nil
}

// BlobKey returns the storage key of a file uploaded by userID at t
func BlobKey(userID, filename string, t time.Time) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%d%s", userID, t.UnixMilli(), ext)
}
