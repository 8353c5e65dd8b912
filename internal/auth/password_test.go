package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_Bcrypt(t *testing.T) {
	h, err := NewPasswordHasher(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := h.Hash("Secret123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.NotContains(t, hash, "Secret123")

	assert.True(t, h.Verify("Secret123", hash))
	assert.False(t, h.Verify("Secret124", hash))
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	h, err := NewPasswordHasher(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	a, err := h.Hash("Secret123")
	require.NoError(t, err)
	b, err := h.Hash("Secret123")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_Argon2idAndCrossVerify(t *testing.T) {
	argon, err := NewPasswordHasher(AlgorithmArgon2id, bcrypt.MinCost)
	require.NoError(t, err)
	bc, err := NewPasswordHasher(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	argonHash, err := argon.Hash("Secret123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(argonHash, "$argon2id$"))

	bcryptHash, err := bc.Hash("Secret123")
	require.NoError(t, err)

	// Either hasher verifies hashes produced by the other.
	assert.True(t, bc.Verify("Secret123", argonHash))
	assert.True(t, argon.Verify("Secret123", bcryptHash))
	assert.False(t, argon.Verify("wrong", argonHash))
}

func TestPasswordHasher_LongPassword(t *testing.T) {
	h, err := NewPasswordHasher(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	long := strings.Repeat("Ab1", 40)
	hash, err := h.Hash(long)
	require.NoError(t, err)
	assert.True(t, h.Verify(long, hash))
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h, err := NewPasswordHasher(AlgorithmBcrypt, bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, h.Verify("Secret123", "not-a-hash"))
	assert.False(t, h.Verify("Secret123", "$argon2id$garbage"))
	assert.False(t, h.Verify("Secret123", ""))
}

func TestNewPasswordHasher_Rejects(t *testing.T) {
	_, err := NewPasswordHasher("md5", 12)
	assert.Error(t, err)

	_, err = NewPasswordHasher(AlgorithmBcrypt, 99)
	assert.Error(t, err)
}
