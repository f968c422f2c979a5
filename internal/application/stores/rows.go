package stores

import (
	"context"
	"fmt"
	"time"

	"daybook/internal/application"
	"daybook/internal/domain"
	"daybook/internal/ports"
)

// Column names shared by the entry, list and item tables
const (
	colID        = "id"
	colUserID    = "user_id"
	colTitle     = "title"
	colContent   = "content"
	colDate      = "date"
	colTime      = "time"
	colDone      = "done"
	colCreatedAt = "created_at"
	colName      = "name"
	colListID    = "list_id"

	colURL        = "url"
	colBlobKey    = "blob_key"
	colUploadedAt = "uploaded_at"
	colBio        = "bio"
	colAvatar     = "avatar"
)

const (
	TableLists    = "lists"
	TableItems    = "items"
	TablePhotos   = "photos"
	TableProfiles = "profiles"
)

func requireUser(user domain.User, op string) error {
	if user.ID == "" {
		return &application.AuthRequiredError{Op: op}
	}
	return nil
}

// CurrentUser resolves the session user, mapping no session to AuthRequiredError
func CurrentUser(ctx context.Context, sessions ports.SessionProvider) (domain.User, error) {
	user, err := sessions.CurrentUser(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to resolve session: %w", err)
	}
	if user == nil || user.ID == "" {
		return domain.User{}, &application.AuthRequiredError{}
	}
	return *user, nil
}

func rowString(r ports.Row, col string) string {
	switch v := r[col].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func rowInt64(r ports.Row, col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func rowBool(r ports.Row, col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	default:
		return false
	}
}

func rowTime(r ports.Row, col string) time.Time {
	switch v := r[col].(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}
		}
		return t
	default:
		return time.Time{}
	}
}

func entryFromRow(kind domain.EntryKind, r ports.Row) domain.DatedEntry {
	return domain.DatedEntry{
		ID:        rowString(r, colID),
		Kind:      kind,
		Title:     rowString(r, colTitle),
		Content:   rowString(r, colContent),
		Date:      rowString(r, colDate),
		Time:      rowString(r, colTime),
		Done:      rowBool(r, colDone),
		CreatedAt: rowTime(r, colCreatedAt),
	}
}

func listFromRow(r ports.Row) domain.ListRecord {
	return domain.ListRecord{
		ID:        rowInt64(r, colID),
		Name:      rowString(r, colName),
		Owner:     rowString(r, colUserID),
		CreatedAt: rowTime(r, colCreatedAt),
		Items:     []domain.ItemRecord{},
	}
}

func itemFromRow(r ports.Row) domain.ItemRecord {
	return domain.ItemRecord{
		ID:        rowInt64(r, colID),
		ListID:    rowInt64(r, colListID),
		Title:     rowString(r, colTitle),
		Done:      rowBool(r, colDone),
		CreatedAt: rowTime(r, colCreatedAt),
	}
}

func photoFromRow(r ports.Row) domain.Photo {
	return domain.Photo{
		ID:         rowInt64(r, colID),
		Owner:      rowString(r, colUserID),
		URL:        rowString(r, colURL),
		Title:      rowString(r, colTitle),
		BlobKey:    rowString(r, colBlobKey),
		UploadedAt: rowTime(r, colUploadedAt),
	}
}

func profileFromRow(r ports.Row) domain.Profile {
	return domain.Profile{
		UserID: rowString(r, colID),
		Name:   rowString(r, colName),
		Bio:    rowString(r, colBio),
		Avatar: rowString(r, colAvatar),
	}
}
