package domain

import "time"

// User is the authenticated identity every read and write is scoped to
type User struct {
	ID    string
	Email string
}

// Profile holds the editable public details of a user
type Profile struct {
	UserID string
	Name   string
	Bio    string
	Avatar string // URL, optional
}

// Photo is a gallery image referenced by URL
type Photo struct {
	ID         int64
	Owner      string
	URL        string
	Title      string
	BlobKey    string // set when the file lives in blob storage
	UploadedAt time.Time
}

// DefaultPhotoTitle is used when a photo is added without a title
const DefaultPhotoTitle = "Untitled"
