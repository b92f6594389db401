package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordAndAuthenticate(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	p := &BasicProvider{Users: []BasicUser{{Username: "bob", PasswordHash: hash}}}

	assert.True(t, p.Authenticate("bob", "hunter2"))
	assert.False(t, p.Authenticate("bob", "wrong"))
	assert.False(t, p.Authenticate("nobody", "hunter2"))
}

func TestAuthenticateCachesVerifiedPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	p := &BasicProvider{Users: []BasicUser{{Username: "bob", PasswordHash: hash}}}

	assert.True(t, p.Authenticate("bob", "hunter2"))
	require.Contains(t, p.cache, "bob")

	// Mutate the stored hash to prove the cached path short-circuits bcrypt.
	p.Users[0].PasswordHash = "corrupted"
	assert.True(t, p.Authenticate("bob", "hunter2"))
}
