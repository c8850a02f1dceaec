package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		tok, err := GenerateToken(TokenSize128)
		require.NoError(t, err)
		require.Len(t, tok, 22)
		require.NotContains(t, seen, tok)
		seen[tok] = struct{}{}
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		tok, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, tok)
	}
}
