package api

import (
	"context"
	"time"

	"github.com/t4nm4ymittal/payflow/internal/domain"
)

// AuthClient talks to the auth service.
type AuthClient struct {
	client *Client
}

// NewAuthClient builds a client for the auth service at baseURL. Auth
// endpoints are public, so no token source is attached.
func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{client: NewClient(baseURL, timeout, nil)}
}

// LoginResult is the auth service's answer to a successful login. The
// user profile is optional; older deployments return only the token.
type LoginResult struct {
	Token string
	User  *domain.User
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (c *AuthClient) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var resp loginResponse
	if err := c.client.post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return LoginResult{}, err
	}

	result := LoginResult{Token: resp.Token}
	if resp.User != nil {
		user := resp.User.toDomain()
		result.User = &user
	}
	return result, nil
}

// Signup registers a new account. The service answers with a
// plain-text confirmation which is returned verbatim.
func (c *AuthClient) Signup(ctx context.Context, username, email, password string) (string, error) {
	return c.client.postText(ctx, "/auth/signup", signupRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
}
