package api

import (
	"context"
	"net/http"

	"github.com/existflow/taskflow/internal/model"
)

// loginRequest is the credential exchange payload
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the successful credential exchange result
type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login exchanges credentials for a token and establishes the session.
// Bad credentials surface as an unauthorized error.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Identity, error) {
	var resp LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	identity := model.Identity{Email: resp.Email, Name: resp.Name}
	if err := c.session.Establish(resp.Token, identity); err != nil {
		// The in-memory session is live even when persistence failed;
		// surface the write error so the user knows the login won't
		// survive a restart.
		return &identity, err
	}
	return &identity, nil
}

// Logout discards the current session. Purely local; the server keeps no
// session state beyond the token's own expiry.
func (c *Client) Logout() error {
	return c.session.Clear()
}
