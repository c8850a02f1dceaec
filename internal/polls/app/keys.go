package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/polls/pkg/cryptox"
	"github.com/aussiebroadwan/polls/pkg/jwtx"
)

// InitTokenKeys builds the KeyManager that signs and verifies access and
// refresh tokens.
//
// Key sources:
//   - HS256: the shared POLLS_JWT_SECRET.
//   - EdDSA with POLLS_JWT_KEY_FILE: one Ed25519 key loaded from disk, so
//     tokens survive restarts.
//   - EdDSA without a key file: POLLS_JWT_NUM_KEYS keys generated in memory.
//     Every outstanding token becomes invalid when the process restarts.
func InitTokenKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{
		Algorithm: cfg.Algorithm,
		Issuer:    cfg.Issuer,
		KeyID:     cfg.KeyID,
		NumKeys:   cfg.NumKeys,
	}

	switch {
	case cfg.Algorithm == jwtx.AlgorithmHS256:
		opts.Secret = []byte(cfg.JWTSecret)
	case cfg.KeyFile != "":
		pemBytes, err := cryptox.ReadPEMFile(cfg.KeyFile)
		if err != nil {
			return nil, err
		}
		opts.PrivateKeyPEM = pemBytes
	default:
		opts.KeyID = ""
	}

	km, err := jwtx.NewKeyManager(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	logger.Info("token signing keys ready",
		"algorithm", km.Algorithm(),
		"num_keys", km.NumSigners(),
		"issuer", cfg.Issuer,
	)
	if cfg.Algorithm != jwtx.AlgorithmHS256 && cfg.KeyFile == "" {
		logger.Warn("using ephemeral signing keys, tokens will not survive a restart")
	}

	return km, nil
}
