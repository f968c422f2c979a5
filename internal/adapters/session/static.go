// Package session provides the single local identity daybook runs as.
package session

import (
	"context"
	"strings"

	"daybook/internal/domain"
	"daybook/internal/ports"
)

// Static implements ports.SessionProvider with a fixed user from configuration
type Static struct {
	user *domain.User
}

var _ ports.SessionProvider = (*Static)(nil)

// NewStatic returns a provider for the given identity. An empty id means
// nobody is signed in.
func NewStatic(id, email string) *Static {
	id = strings.TrimSpace(id)
	if id == "" {
		return &Static{}
	}
	return &Static{user: &domain.User{ID: id, Email: strings.TrimSpace(email)}}
}

// CurrentUser returns a copy of the configured user, or nil when none is set
func (s *Static) CurrentUser(ctx context.Context) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.user == nil {
		return nil, nil
	}
	u := *s.user
	return &u, nil
}
