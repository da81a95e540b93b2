package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest(t *testing.T) {
	// SHA-256("q") rendered as lowercase hex
	assert.Equal(t, "8e35c2cd3bf6641bdb0e2050b76932cbb2e6034a0ddacc1d9bea82a6ba57f7cf", Digest("q"))
	assert.Equal(t, 64, len(Digest("anything")))
	assert.NotEqual(t, Digest("a"), Digest("b"))
}

func TestVerify(t *testing.T) {
	digest := Digest("secret123")

	assert.True(t, Verify("secret123", digest))
	assert.False(t, Verify("secret124", digest))
	assert.False(t, Verify("", digest))
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, Validate(""), ErrEmptyPassword)
	require.NoError(t, Validate("x"))
}
