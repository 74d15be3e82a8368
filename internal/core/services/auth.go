package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
	"github.com/studia-labs/studia-cli/internal/core/ports/driving"
	"github.com/studia-labs/studia-cli/internal/logger"
)

// Ensure AuthService implements the interface.
var _ driving.AuthService = (*AuthService)(nil)

// AuthService manages the client session. It owns the only mutable
// shared state of the client: the bearer token, pushed into the API
// client on login and restore.
type AuthService struct {
	api      driven.AuthAPI
	carrier  driven.TokenCarrier
	tokens   driven.SessionStore
	validate *validator.Validate

	mu      sync.RWMutex
	session *domain.Session
}

// NewAuthService creates a new auth service.
func NewAuthService(api driven.AuthAPI, carrier driven.TokenCarrier, tokens driven.SessionStore) *AuthService {
	return &AuthService{
		api:      api,
		carrier:  carrier,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// Login authenticates, caches the token and fetches the profile.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return s.adopt(ctx, token)
}

// Register creates an account. The session is untouched; callers log in
// separately after registering.
func (s *AuthService) Register(ctx context.Context, input driven.RegisterInput) (*domain.User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s.api.Register(ctx, input)
}

// Logout clears the cached token and the in-memory session.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	s.carrier.SetToken("")

	if err := s.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("clearing cached token: %w", err)
	}
	return nil
}

// Restore loads a previously cached token and refetches the profile.
func (s *AuthService) Restore(ctx context.Context) (*domain.Session, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading cached token: %w", err)
	}
	if token == "" {
		return nil, domain.ErrAuthRequired
	}

	if exp := tokenExpiry(token); !exp.IsZero() && time.Now().After(exp) {
		// Stale token; drop it rather than hitting the server.
		_ = s.tokens.ClearToken(ctx) //nolint:errcheck
		return nil, domain.ErrAuthExpired
	}

	session, err := s.adopt(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrAuthInvalid) {
			_ = s.tokens.ClearToken(ctx) //nolint:errcheck
			s.carrier.SetToken("")
		}
		return nil, err
	}
	return session, nil
}

// Session returns the in-memory session, nil when logged out.
func (s *AuthService) Session() *domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// adopt installs a token, fetches the profile and caches both.
func (s *AuthService) adopt(ctx context.Context, token string) (*domain.Session, error) {
	s.carrier.SetToken(token)

	user, err := s.api.Me(ctx)
	if err != nil {
		s.carrier.SetToken("")
		return nil, err
	}

	session := &domain.Session{
		Token:     token,
		User:      user,
		ExpiresAt: tokenExpiry(token),
	}

	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	if err := s.tokens.SaveToken(ctx, token); err != nil {
		// The session still works for this invocation.
		logger.Warn("Caching session token: %v", err)
	}

	return session, nil
}

// tokenExpiry decodes the exp claim without verifying the signature.
// The server stays authoritative; this only drives display and the
// pre-flight staleness check.
func tokenExpiry(token string) time.Time {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
