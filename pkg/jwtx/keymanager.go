package jwtx

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/aussiebroadwan/polls/pkg/cryptox"
)

// KeyManager owns the signing keys of an instance and the matching Verifier.
// Signing load is spread across all active keys.
type KeyManager struct {
	Verifier Verifier

	algorithm string
	keys      *KeySet

	mu      sync.RWMutex
	signers []Signer
}

// KeyManagerOptions configures the KeyManager for a specific use case.
type KeyManagerOptions struct {
	// Algorithm is AlgorithmEdDSA or AlgorithmHS256.
	Algorithm string

	// Issuer is stamped into and required on every token.
	Issuer string

	// Audience values required on verification. Empty disables the check.
	Audience []string

	// KeyID names a file-backed or secret-backed key.
	KeyID string

	// PrivateKeyPEM is a PKCS8 Ed25519 key. When empty for EdDSA, NumKeys
	// ephemeral keys are generated instead.
	PrivateKeyPEM []byte

	// NumKeys is the number of ephemeral EdDSA keys (default 1, max 10).
	NumKeys int

	// Secret is the HS256 shared secret.
	Secret []byte
}

// NewKeyManager builds signers and a verifier for opts.Algorithm.
//
// Ephemeral EdDSA keys live only in memory, so every token becomes invalid
// when the process restarts. Use a key file or HS256 to keep sessions alive
// across deploys.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	switch opts.Algorithm {
	case AlgorithmEdDSA, "":
		return newEdDSAKeyManager(opts)
	case AlgorithmHS256:
		return newHS256KeyManager(opts)
	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (supported: EdDSA, HS256)", opts.Algorithm)
	}
}

func newEdDSAKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	km := &KeyManager{
		algorithm: AlgorithmEdDSA,
		keys:      NewKeySet(),
	}
	km.Verifier = NewVerifierEdDSA(km.keys, opts.Issuer, opts.Audience)

	if len(opts.PrivateKeyPEM) > 0 {
		if opts.KeyID == "" {
			return nil, fmt.Errorf("jwtx: KeyID is required with a private key")
		}
		s, err := newEdDSASigner(opts.KeyID, opts.PrivateKeyPEM)
		if err != nil {
			return nil, err
		}
		if err := km.AddSigner(s); err != nil {
			return nil, err
		}
		return km, nil
	}

	n := min(max(opts.NumKeys, 1), 10)
	for i := range n {
		pemKey, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate key %d: %w", i+1, err)
		}

		kid, err := generateRandomKeyID()
		if err != nil {
			return nil, err
		}

		s, err := newEdDSASigner(kid, pemKey)
		if err != nil {
			return nil, err
		}
		if err := km.AddSigner(s); err != nil {
			return nil, err
		}
	}

	return km, nil
}

func newHS256KeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	s, err := newHS256Signer(opts.KeyID, opts.Secret)
	if err != nil {
		return nil, err
	}

	return &KeyManager{
		Verifier:  NewVerifierHS256(opts.KeyID, opts.Secret, opts.Issuer, opts.Audience),
		algorithm: AlgorithmHS256,
		signers:   []Signer{s},
	}, nil
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string { return km.algorithm }

// IsReady reports whether at least one signing key is loaded.
func (km *KeyManager) IsReady() bool {
	return km.NumSigners() > 0
}

// NumSigners returns the number of active signing keys.
func (km *KeyManager) NumSigners() int {
	km.mu.RLock()
	defer km.mu.RUnlock()
	return len(km.signers)
}

// GetSigner returns a randomly selected active signer, or nil if none exist.
func (km *KeyManager) GetSigner() Signer {
	km.mu.RLock()
	defer km.mu.RUnlock()

	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}

// AddSigner adds an EdDSA signer and publishes its key for verification.
func (km *KeyManager) AddSigner(s *EdDSASigner) error {
	if km.keys == nil {
		return fmt.Errorf("jwtx: %s key manager does not take EdDSA signers", km.algorithm)
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if err := km.keys.AddSigner(s); err != nil {
		return fmt.Errorf("jwtx: add signer to keyset: %w", err)
	}

	km.mu.Lock()
	defer km.mu.Unlock()
	km.signers = append(km.signers, s)
	return nil
}

// generateRandomKeyID returns "polls-{128-bit token}".
func generateRandomKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: generate key id: %w", err)
	}
	return "polls-" + token, nil
}
