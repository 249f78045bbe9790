package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("hunter22", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "salt must differ between calls")
	assert.True(t, CheckPassword(h1, "hunter22"))
	assert.True(t, CheckPassword(h2, "hunter22"))
	assert.False(t, CheckPassword(h1, "hunter23"))
}

func TestHashPassword_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()

	h, err := HashPassword("pw", 99)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
