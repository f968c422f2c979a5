package commands

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"daybook/internal/adapters/session"
	"daybook/internal/adapters/sqlite"
	"daybook/internal/domain"
	"daybook/internal/ports"
)

const testUser = "u-alice"

func openTestDB(t *testing.T) *sqlite.Store {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "daybook.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func signedIn() ports.SessionProvider {
	return session.NewStatic(testUser, "alice@example.com")
}

func signedOut() ports.SessionProvider {
	return session.NewStatic("", "")
}

func cursorAt(t *testing.T, s string) domain.Cursor {
	t.Helper()
	d, err := domain.ParseDate(s, nil)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return domain.NewCursor(d)
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// failingInserts lets the first n inserts through and fails the rest
type failingInserts struct {
	ports.RecordStore
	mu   sync.Mutex
	left int
}

func (f *failingInserts) Insert(ctx context.Context, table string, row ports.Row) (ports.Row, error) {
	f.mu.Lock()
	if f.left == 0 {
		f.mu.Unlock()
		return nil, errInjected
	}
	f.left--
	f.mu.Unlock()
	return f.RecordStore.Insert(ctx, table, row)
}

type injectedError struct{}

func (injectedError) Error() string { return "injected failure" }

var errInjected error = injectedError{}
