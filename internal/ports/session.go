package ports

import (
	"context"

	"daybook/internal/domain"
)

// SessionProvider resolves the authenticated user. It returns a nil user and
// nil error when nobody is signed in.
type SessionProvider interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
}
