package domain

import "time"

// TokenPair is what login returns. Both tokens are signed JWTs and nothing
// about them is stored server side.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration // access token lifetime
}
