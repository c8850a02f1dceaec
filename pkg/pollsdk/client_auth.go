package pollsdk

import (
	"context"
	"net/http"
)

// Register creates an account. Validation failures come back as an *APIError
// with Fields set.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	body, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/register", body, "")
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginRaw exchanges credentials for tokens without creating a Session.
func (c *SDKClient) LoginRaw(ctx context.Context, username, password string) (*LoginResponse, error) {
	body, err := encodeBody(LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/login", body, "")
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns a Session that refreshes its access token
// when the server rejects it.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*Session, error) {
	login, err := c.LoginRaw(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return newSession(c, login), nil
}

// Refresh exchanges a refresh token for a new access token.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	body, err := encodeBody(RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/token/refresh", body, "")
	if err != nil {
		return nil, err
	}

	var out RefreshResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
