package auth

import (
	"testing"
	"time"

	"github.com/madrasa-lms/madrasa/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "unit-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, PurposeAccess, secret, time.Hour)
	require.NoError(t, err)

	userID, err := ParseToken(token, PurposeAccess, secret)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestTokenWrongPurpose(t *testing.T) {
	token, err := GenerateToken(42, PurposeReset, secret, time.Hour)
	require.NoError(t, err)

	// A reset token must not authenticate API requests, and vice versa.
	_, err = ParseToken(token, PurposeAccess, secret)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, PurposeAccess, secret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, PurposeAccess, "other-secret")
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken(42, PurposeAccess, secret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, PurposeAccess, secret)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", PurposeAccess, secret)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", "s3cret"))
}
