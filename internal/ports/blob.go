package ports

import (
	"context"
	"io"
)

// BlobStorage stores uploaded files and hands out URLs for them
type BlobStorage interface {
	Put(ctx context.Context, key string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
