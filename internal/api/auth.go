package api

import (
	"context"
	"net/url"
)

// Login exchanges credentials for a bearer token. The backend expects the
// OAuth2 password form with the email in the username field.
func (c *Client) Login(ctx context.Context, email, password string) (Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var tok Token
	if err := c.postForm(ctx, "/token", form, &tok); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// Register creates a new account. Login is a separate step.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, "POST", "/register", nil, req, nil)
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	if err := c.get(ctx, "/users/me", nil, &u); err != nil {
		return User{}, err
	}
	return u, nil
}
