package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	h := NewHasher()

	digest, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", digest)
	assert.True(t, strings.HasPrefix(digest, "$2a$"))

	assert.True(t, h.Verify("secret1", digest))
	assert.False(t, h.Verify("secret2", digest))
	assert.False(t, h.Verify("", digest))
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher()

	first, err := h.Hash("secret1")
	require.NoError(t, err)
	second, err := h.Hash("secret1")
	require.NoError(t, err)

	// Same plaintext, different salt, different digest; both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("secret1", first))
	assert.True(t, h.Verify("secret1", second))
}
