package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cure-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-pass", hash)

	assert.True(t, CheckPasswordHash("s3cure-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("s3cure-pass"))
	assert.Error(t, ValidatePassword("short"), "too short")
	assert.Error(t, ValidatePassword("1234567890"), "entirely numeric")
	assert.NoError(t, ValidatePassword("1234567a"))
}
