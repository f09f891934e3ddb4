package apiclient

import (
	"context"
	"net/http"

	"learnhub_client/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token and stores it. The token
// itself stays opaque to the rest of the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return err
	}
	return c.tokens.SetToken(out.Token)
}

// CurrentUser fetches the authenticated user's record. Errors are expected
// to be treated as an anonymous session by the caller.
func (c *Client) CurrentUser(ctx context.Context) (*model.UserRecord, error) {
	var out model.UserRecord
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
