package jwtx

import (
	"crypto/subtle"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Verifier validates HMAC tokens minted by an HS256Signer.
type HS256Verifier struct {
	kid    string
	secret []byte
	issuer string
	aud    []string
}

// NewVerifierHS256 returns a verifier for tokens signed with secret. When kid
// is not empty, tokens must carry the same kid header.
func NewVerifierHS256(kid string, secret []byte, issuer string, aud []string) *HS256Verifier {
	return &HS256Verifier{
		kid:    kid,
		secret: append([]byte(nil), secret...),
		issuer: issuer,
		aud:    aud,
	}
}

func (v *HS256Verifier) Verify(tokenStr string) (Claims, error) {
	return parse(tokenStr, jwt.SigningMethodHS256.Alg(), v.issuer, v.aud, func(t *jwt.Token) (any, error) {
		if v.kid != "" {
			kid, _ := t.Header["kid"].(string)
			if subtle.ConstantTimeCompare([]byte(kid), []byte(v.kid)) != 1 {
				return nil, ErrNoKey
			}
		}
		return v.secret, nil
	})
}
