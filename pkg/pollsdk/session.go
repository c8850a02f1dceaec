package pollsdk

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
)

// Profile is the account information returned by /login.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
	UserType  string
}

// IsAdmin reports whether the session belongs to an admin account.
func (p Profile) IsAdmin() bool { return p.UserType == "admin" }

// Session represents a logged-in user. When the server rejects the access
// token with 401 the session refreshes it once and retries the request.
type Session struct {
	client  *SDKClient
	profile Profile

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func newSession(client *SDKClient, login *LoginResponse) *Session {
	return &Session{
		client: client,
		profile: Profile{
			Username:  login.Username,
			FirstName: login.FirstName,
			LastName:  login.LastName,
			UserType:  login.UserType,
		},
		accessToken:  login.Access,
		refreshToken: login.Refresh,
	}
}

// NewSessionFromTokens creates a session from tokens obtained elsewhere.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string) *Session {
	return &Session{
		client:       c,
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

// User returns the profile captured at login. It is empty for sessions
// built with NewSessionFromTokens.
func (s *Session) User() Profile { return s.profile }

// AccessToken returns the current access token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// refresh replaces the access token unless another goroutine already did so
// since stale was read.
func (s *Session) refresh(ctx context.Context, stale string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != stale {
		return s.accessToken, nil
	}
	if s.refreshToken == "" {
		return "", fmt.Errorf("access token rejected and no refresh token available")
	}

	out, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = out.Access
	if out.Refresh != "" {
		s.refreshToken = out.Refresh
	}
	return s.accessToken, nil
}

// doAuthRequest sends an authenticated request and decodes the response into
// target. A 401 triggers one refresh and retry.
func (s *Session) doAuthRequest(
	ctx context.Context,
	method, path string,
	reqBody any,
	expectedStatus int,
	target any,
) error {
	body, err := encodeBody(reqBody)
	if err != nil {
		return err
	}

	token := s.AccessToken()
	resp, err := s.client.doRequest(ctx, method, path, body, token)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		token, err = s.refresh(ctx, token)
		if err != nil {
			return err
		}
		resp, err = s.client.doRequest(ctx, method, path, body, token)
		if err != nil {
			return err
		}
	}

	return decodeJSON(resp, target, expectedStatus)
}
