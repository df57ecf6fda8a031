package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("7654321")
	require.NoError(t, err)
	require.NotEqual(t, "7654321", hash)

	assert.True(t, CheckPassword(hash, "7654321"))
	assert.False(t, CheckPassword(hash, "1234567"))
}
