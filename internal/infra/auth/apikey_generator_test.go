package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyGenerator_Generate(t *testing.T) {
	gen := NewAPIKeyGenerator()

	secret, hash, displayPrefix, err := gen.Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(secret, "sk_"))
	assert.True(t, strings.HasPrefix(displayPrefix, "sk_"))
	assert.True(t, strings.HasPrefix(secret, displayPrefix))
	assert.NotContains(t, hash, secret)
	assert.Len(t, hash, 64) // hex-encoded SHA-256

	// The stored digest must be reproducible from the secret alone.
	assert.Equal(t, hash, gen.HashSecret(secret))
}

func TestAPIKeyGenerator_SecretsAreUnique(t *testing.T) {
	gen := NewAPIKeyGenerator()

	seen := make(map[string]bool)
	for range 100 {
		secret, _, _, err := gen.Generate()
		require.NoError(t, err)
		assert.False(t, seen[secret])
		seen[secret] = true
	}
}

func TestAPIKeyGenerator_HashIsDeterministic(t *testing.T) {
	gen := NewAPIKeyGenerator()

	assert.Equal(t, gen.HashSecret("sk_abc"), gen.HashSecret("sk_abc"))
	assert.NotEqual(t, gen.HashSecret("sk_abc"), gen.HashSecret("sk_abd"))
}
