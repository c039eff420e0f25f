package api

import (
	"context"
	"net/http"
)

// Login authenticates with the API. The returned key is persisted into the
// token store before Login returns, so subsequent requests carry it.
func (c *Client) Login(ctx context.Context, creds LoginCredentials) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login/", creds)
	if err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := parseResponse(resp, &authResp); err != nil {
		return nil, err
	}

	if authResp.Key != "" {
		if err := c.tokens.Set(authResp.Key); err != nil {
			return nil, err
		}
	}

	return &authResp, nil
}

// Register creates a new account. Like Login, the returned key is persisted
// as a side effect before returning.
func (c *Client) Register(ctx context.Context, data RegisterData) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/register/", data)
	if err != nil {
		return nil, err
	}

	var authResp AuthResponse
	if err := parseResponse(resp, &authResp); err != nil {
		return nil, err
	}

	if authResp.Key != "" {
		if err := c.tokens.Set(authResp.Key); err != nil {
			return nil, err
		}
	}

	return &authResp, nil
}

// Logout invalidates the session server-side. It does not touch the token
// store; ending the local session is the session manager's call.
func (c *Client) Logout(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/logout/", nil)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// CurrentUser retrieves the currently authenticated user
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/user/", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := parseResponse(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdateProfile patches the profile with only the fields set on update and
// returns the full user object the server now holds
func (c *Client) UpdateProfile(ctx context.Context, update *ProfileUpdate) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPatch, "/auth/user/", update)
	if err != nil {
		return nil, err
	}

	var user User
	if err := parseResponse(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ChangePassword changes the password of the authenticated user
func (c *Client) ChangePassword(ctx context.Context, data PasswordChangeData) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/password/change/", data)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// ResetPassword requests a password reset email for the given address
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/password/reset/", map[string]string{"email": email})
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}

// ConfirmPasswordReset completes a password reset using the emailed uid
// and token
func (c *Client) ConfirmPasswordReset(ctx context.Context, data PasswordResetConfirmData) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/password/reset/confirm/", data)
	if err != nil {
		return err
	}
	return parseResponse(resp, nil)
}
