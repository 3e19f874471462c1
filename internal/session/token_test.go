package session

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testSecret, ttl)
	require.NoError(t, err)
	return svc
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	id := uuid.New()

	token, err := svc.GenerateToken(id)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	got, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	require.Error(t, err)
}

func TestTokenService_Expired(t *testing.T) {
	svc := newTestTokenService(t, time.Minute)
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestTokenService_WrongSecret(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	other, err := NewTokenService("a-different-secret-of-reasonable-length", time.Hour)
	require.NoError(t, err)

	token, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token signature")
}

func TestTokenService_Malformed(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	_, err := svc.ValidateToken("")
	require.Error(t, err)

	_, err = svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed token")
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	claims := &Claims{SessionID: uuid.New()}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.ValidateToken(unsigned)
	require.Error(t, err)
}

func TestTokenService_MissingSessionID(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	token, err := svc.GenerateToken(uuid.Nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	require.Error(t, err)
}
