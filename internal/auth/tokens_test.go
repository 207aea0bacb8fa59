package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestTokenManager(t *testing.T, now time.Time) *TokenManager {
	t.Helper()
	m, err := NewTokenManager(testSecret, DefaultTokenExpiry)
	require.NoError(t, err)
	m.now = func() time.Time { return now }
	return m
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	now := time.Now()
	m := newTestTokenManager(t, now)

	token, err := m.Issue("user-1")
	require.NoError(t, err)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, now.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
}

func TestTokenManager_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-25 * time.Hour)
	issuer := newTestTokenManager(t, issuedAt)
	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	verifier := newTestTokenManager(t, time.Now())
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := newTestTokenManager(t, time.Now()).Issue("user-1")
	require.NoError(t, err)

	other, err := NewTokenManager("another-secret", time.Hour)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestTokenManager_RejectsMalformedAndForeignTokens(t *testing.T) {
	m := newTestTokenManager(t, time.Now())

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "user-1"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"empty":      "",
		"garbage":    "not.a.token",
		"alg none":   unsigned,
		"no user id": noUser,
		"no expiry":  noExpiry,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
