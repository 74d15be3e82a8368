package rest

import (
	"context"
	"net/http"

	"github.com/studia-labs/studia-cli/internal/core/domain"
	"github.com/studia-labs/studia-cli/internal/core/ports/driven"
)

// Ensure AuthAPI implements the interface.
var _ driven.AuthAPI = (*AuthAPI)(nil)

// AuthAPI implements driven.AuthAPI against /auth.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates the auth endpoint group.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The token is NOT
// installed on the client here; the auth service decides when.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := a.client.do(ctx, http.MethodPost, "/auth/login",
		loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates a new account.
func (a *AuthAPI) Register(ctx context.Context, input driven.RegisterInput) (*domain.User, error) {
	var user domain.User
	if err := a.client.do(ctx, http.MethodPost, "/auth/register", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me returns the profile for the current token.
func (a *AuthAPI) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := a.client.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
