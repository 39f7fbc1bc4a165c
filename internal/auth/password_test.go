package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("supersecret")
	require.NoError(t, err)
	require.NotEqual(t, "supersecret", hashed)

	require.True(t, CheckPassword(hashed, "supersecret"))
	require.False(t, CheckPassword(hashed, "wrongpassword"))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	// A corrupt stored hash is a verification failure, not an error.
	require.False(t, CheckPassword("not-a-bcrypt-hash", "supersecret"))
	require.False(t, CheckPassword("", "supersecret"))
}
