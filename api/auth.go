package api

import (
	"context"
	"net/http"

	"github.com/Buzzy89/client/models"
)

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token and user payload.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.postJSON(ctx, http.MethodPost, "/auth/login", "", credentials{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. The response carries a token and
// user payload just like Login.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.postJSON(ctx, http.MethodPost, "/auth/register", "", credentials{
		Username: username,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser fetches the account owning the given token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "/users/me", token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
