package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	token, err := Sign("user-123", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := Parse(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestParseWrongSecret(t *testing.T) {
	token, err := Sign("user-123", "secret")
	require.NoError(t, err)

	_, err = Parse(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseEmptyToken(t *testing.T) {
	_, err := Parse("", "secret")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse("not-a-jwt", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
