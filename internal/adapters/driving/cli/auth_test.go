package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studia-labs/studia-cli/internal/core/domain"
)

func setupAuthTest(mock *mockAuthService) func() {
	old := authService
	authService = mock
	return func() { authService = old }
}

func TestWhoami_NotSignedIn(t *testing.T) {
	cleanup := setupAuthTest(&mockAuthService{})
	defer cleanup()

	out, err := execute("whoami")

	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")
}

func TestWhoami_ShowsProfile(t *testing.T) {
	cleanup := setupAuthTest(&mockAuthService{
		RestoreFunc: func(_ context.Context) (*domain.Session, error) {
			return &domain.Session{
				Token: "token",
				User: &domain.User{
					FullName:   "Jane Doe",
					Email:      "jane@example.com",
					Department: "engineering",
					Role:       domain.RoleAdmin,
				},
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	})
	defer cleanup()

	out, err := execute("whoami")

	require.NoError(t, err)
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "jane@example.com")
	assert.Contains(t, out, "admin")
}

func TestLogout(t *testing.T) {
	cleanup := setupAuthTest(&mockAuthService{})
	defer cleanup()

	out, err := execute("logout")

	require.NoError(t, err)
	assert.Contains(t, out, "Signed out.")
}

func TestLogin_FailsWithoutService(t *testing.T) {
	old := authService
	authService = nil
	defer func() { authService = old }()

	_, err := execute("login", "jane@example.com")

	assert.Error(t, err)
}
