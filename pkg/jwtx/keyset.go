package jwtx

import (
	"crypto/ed25519"
	"errors"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds Ed25519 verification keys by kid. It is safe for concurrent use.
type KeySet struct {
	mu  sync.RWMutex
	pub map[string]ed25519.PublicKey
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{pub: make(map[string]ed25519.PublicKey)}
}

// Add registers pub under kid, replacing any previous key with that kid.
func (k *KeySet) Add(kid string, pub ed25519.PublicKey) error {
	if kid == "" {
		return ErrMissingKID
	}
	if len(pub) != ed25519.PublicKeySize {
		return errors.New("jwtx: invalid Ed25519 public key size")
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub[kid] = pub
	return nil
}

// AddSigner registers the public half of an EdDSA signer.
func (k *KeySet) AddSigner(s *EdDSASigner) error {
	return k.Add(s.KID(), s.Public())
}

// Get returns the public key for the given kid.
func (k *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	if pk, ok := k.pub[kid]; ok {
		return pk, nil
	}
	return nil, ErrNoKey
}

// Len returns the number of keys loaded.
func (k *KeySet) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub)
}
