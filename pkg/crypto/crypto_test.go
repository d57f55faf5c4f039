package crypto_test

import (
	"testing"

	"github.com/WeepingDogel/simple-social-board-api/pkg/crypto"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := crypto.HashPassword("hunter2")
	require.Nil(t, err)
	require.NotEqual(t, "hunter2", hashed)

	require.True(t, crypto.VerifyPassword("hunter2", hashed))
	require.False(t, crypto.VerifyPassword("hunter3", hashed))
}
