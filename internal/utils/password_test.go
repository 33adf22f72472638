package utils

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	password := "password123"
	hashedPassword, err := HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)
	assert.True(t, strings.HasPrefix(hashedPassword, "$argon2id$"))
}

func TestHashPassword_UniqueSalt(t *testing.T) {
	password := "password123"
	hash1, _ := HashPassword(password)
	hash2, _ := HashPassword(password)

	// Same password, different salt, different hash
	assert.NotEqual(t, hash1, hash2)
	assert.True(t, CheckPasswordHash(password, hash1))
	assert.True(t, CheckPasswordHash(password, hash2))
}

func TestCheckPasswordHash(t *testing.T) {
	password := "password123"
	hashedPassword, _ := HashPassword(password)

	assert.True(t, CheckPasswordHash(password, hashedPassword))
	assert.False(t, CheckPasswordHash("wrongpassword", hashedPassword))
}

func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("password123", "invalidhash"))
	assert.False(t, CheckPasswordHash("password123", ""))
	assert.False(t, CheckPasswordHash("password123", "$argon2id$v=19$m=65536,t=1,p=4$notbase64!!$alsonot!!"))
	// bcrypt-shaped hash from a previous scheme verifies false, not panic
	assert.False(t, CheckPasswordHash("password123", "$2a$10$N9qo8uLOickgx2ZMRZoMye"))
}

// A hash truncated to an empty salt or key segment must verify false,
// never crash in key derivation.
func TestCheckPasswordHash_EmptySegments(t *testing.T) {
	salt := base64.RawStdEncoding.EncodeToString([]byte("sixteen-byte-slt"))
	key := base64.RawStdEncoding.EncodeToString([]byte("thirty-two-byte-key-for-testing!"))

	assert.False(t, CheckPasswordHash("password123", "$argon2id$v=19$m=65536,t=1,p=4$"+salt+"$"))
	assert.False(t, CheckPasswordHash("password123", "$argon2id$v=19$m=65536,t=1,p=4$$"+key))
	assert.False(t, CheckPasswordHash("password123", "$argon2id$v=19$m=65536,t=1,p=4$$"))
}
