package secrets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", hash)

	require.NoError(t, Verify("hunter2", hash))
	require.ErrorIs(t, Verify("wrong", hash), ErrMismatch)
}

func TestHashRejectsEmpty(t *testing.T) {
	_, err := Hash("")
	require.Error(t, err)
}

func TestGenerateCode(t *testing.T) {
	a, err := GenerateCode()
	require.NoError(t, err)
	b, err := GenerateCode()
	require.NoError(t, err)

	require.Len(t, a, 30)
	require.NotEqual(t, a, b)
	for _, r := range a {
		require.Contains(t, codeAlphabet, string(r))
	}
}
