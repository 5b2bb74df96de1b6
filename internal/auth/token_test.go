package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 168)

	token, expiresAt, err := tm.Issue(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(168*time.Hour), expiresAt, time.Minute)

	subjectID, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), subjectID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 1).Issue(7)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", 1).Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)
	token, _, err := tm.Issue(7)
	require.NoError(t, err)

	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	_, err = tm.Verify(string(tampered))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)
	tm.ttl = -time.Hour

	token, _, err := tm.Issue(7)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsWrongSigningMethod(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	claims := jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 1)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", token)
	}
}

func TestTTLDefaultsToSevenDays(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	assert.Equal(t, 168*time.Hour, tm.ttl)
}
