package filesystem

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"daybook/internal/ports"
)

// BlobStore implements ports.BlobStorage on a directory tree managed by diskv.
// A key such as "u1/1710000000000.jpg" is stored at <base>/u1/1710000000000.jpg.
type BlobStore struct {
	d        *diskv.Diskv
	basePath string
	baseURL  string
}

// Ensure BlobStore implements BlobStorage
var _ ports.BlobStorage = (*BlobStore)(nil)

// NewBlobStore creates a blob store rooted at basePath. When baseURL is
// empty, PublicURL returns file:// URLs.
func NewBlobStore(basePath, baseURL string) *BlobStore {
	return &BlobStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      4 * 1024 * 1024, // 4MB
		}),
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// Put writes the blob, replacing any previous content under key
func (b *BlobStore) Put(ctx context.Context, key string, r io.Reader) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.d.WriteStream(key, r, true); err != nil {
		return fmt.Errorf("failed to store blob %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob. A missing blob is not an error.
func (b *BlobStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if !b.d.Has(key) {
		return nil
	}
	if err := b.d.Erase(key); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}

// Open returns a reader for the blob
func (b *BlobStore) Open(key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return b.d.ReadStream(key, false)
}

// PublicURL returns where the blob can be fetched from
func (b *BlobStore) PublicURL(key string) string {
	if b.baseURL != "" {
		return b.baseURL + "/" + key
	}
	abs, err := filepath.Abs(filepath.Join(b.basePath, filepath.FromSlash(key)))
	if err != nil {
		abs = filepath.Join(b.basePath, filepath.FromSlash(key))
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

// Keys lists the stored keys below prefix
func (b *BlobStore) Keys(prefix string) []string {
	var out []string
	done := make(chan struct{})
	defer close(done)
	for k := range b.d.KeysPrefix(prefix, done) {
		out = append(out, k)
	}
	return out
}

func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") {
		return fmt.Errorf("invalid blob key %q", key)
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." || strings.ContainsRune(part, os.PathSeparator) {
			return fmt.Errorf("invalid blob key %q", key)
		}
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}
