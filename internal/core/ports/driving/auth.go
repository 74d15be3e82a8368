package driving

import (
	"context"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// AuthService manages the client session: login, registration and the
// cached bearer token. It is the only holder of mutable shared state
// (the token); every other service reads it through the API client.
type AuthService interface {
	// Login authenticates, caches the token and fetches the profile.
	Login(ctx context.Context, email, password string) (*domain.Session, error)

	// Register creates an account. Input is validated client-side
	// before the request.
	Register(ctx context.Context, input driven.RegisterInput) (*domain.User, error)

	// Logout clears the cached token and profile.
	Logout(ctx context.Context) error

	// Restore loads a previously cached token and refetches the
	// profile. Returns ErrAuthRequired when no token is cached.
	Restore(ctx context.Context) (*domain.Session, error)

	// Session returns the in-memory session, nil when logged out.
	Session() *domain.Session
}
