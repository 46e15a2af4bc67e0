package signing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenShape(t *testing.T) {
	token, err := NewAccessToken()
	require.NoError(t, err)
	require.Len(t, token, 32)
	for _, r := range token {
		assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'), "unexpected rune %q", r)
	}
}

func TestNewAccessTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := NewAccessToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "token collision after %d draws", i)
		seen[token] = true
	}
}
