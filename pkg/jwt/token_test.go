package jwtPkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")

	token, exp, err := Sign(map[string]interface{}{
		"id":       "E001",
		"email":    "priya@example.com",
		"username": "Priya Sharma",
	}, time.Hour)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	parsed, err := ParseToken(token, "JWT_ACCESS_TOKEN_SECRET")
	require.NoError(t, err)

	user, err := LoginDataFromToken(parsed)
	require.NoError(t, err)
	assert.Equal(t, "E001", user.ID)
	assert.Equal(t, "Priya Sharma", user.Username)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")
	token, _, err := Sign(map[string]interface{}{"id": "E001"}, time.Hour)
	require.NoError(t, err)

	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "other-secret")
	_, err = ParseToken(token, "JWT_ACCESS_TOKEN_SECRET")
	assert.Error(t, err)
}

func TestLoginDataFromToken_MissingClaims(t *testing.T) {
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test-secret")
	token, _, err := Sign(map[string]interface{}{"id": "E001"}, time.Hour)
	require.NoError(t, err)

	parsed, err := ParseToken(token, "JWT_ACCESS_TOKEN_SECRET")
	require.NoError(t, err)

	_, err = LoginDataFromToken(parsed)
	assert.ErrorIs(t, err, ErrMissingClaims)
}

func TestBearerToken(t *testing.T) {
	tok, err := BearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	_, err = BearerToken("")
	assert.Error(t, err)
	_, err = BearerToken("Basic abc")
	assert.Error(t, err)
	_, err = BearerToken("Bearer   ")
	assert.Error(t, err)
}
