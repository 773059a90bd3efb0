package hashx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigest_Deterministic(t *testing.T) {
	a, err := Digest("hunter2", "secret")
	require.NoError(t, err)
	b, err := Digest("hunter2", "secret")
	require.NoError(t, err)

	assert.Equal(t, a, b, "same plaintext and secret must produce the same digest")
	assert.Len(t, a, 64, "32-byte digest hex-encoded")
}

func TestDigest_ChangesWithSecret(t *testing.T) {
	a, err := Digest("hunter2", "secret-one")
	require.NoError(t, err)
	b, err := Digest("hunter2", "secret-two")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDigest_ChangesWithPlaintext(t *testing.T) {
	a, err := Digest("hunter2", "secret")
	require.NoError(t, err)
	b, err := Digest("hunter3", "secret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDigest_EmptyInputs(t *testing.T) {
	_, err := Digest("", "secret")
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = Digest("hunter2", "")
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestEqual(t *testing.T) {
	a, err := Digest("hunter2", "secret")
	require.NoError(t, err)

	assert.True(t, Equal(a, a))
	assert.False(t, Equal(a, a+"00"))
}
