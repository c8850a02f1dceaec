package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSAVerifier validates EdDSA tokens against a KeySet selected by kid.
type EdDSAVerifier struct {
	keys   *KeySet
	issuer string
	aud    []string
}

// NewVerifierEdDSA creates a verifier using a KeySet of Ed25519 public keys.
func NewVerifierEdDSA(keys *KeySet, issuer string, aud []string) *EdDSAVerifier {
	return &EdDSAVerifier{keys: keys, issuer: issuer, aud: aud}
}

func (v *EdDSAVerifier) Verify(tokenStr string) (Claims, error) {
	return parse(tokenStr, jwt.SigningMethodEdDSA.Alg(), v.issuer, v.aud, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrMissingKID
		}

		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("jwtx: unknown kid %q: %w", kid, err)
		}
		return pub, nil
	})
}
