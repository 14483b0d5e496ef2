package jwt

import (
	"testing"
	"time"

	"cosmetic-platform-dataset/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *JWTService {
	return NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: time.Hour})
}

func TestGenerateAndValidate(t *testing.T) {
	s := newService()
	sub := uuid.MustParse("11111111-1111-4111-8111-111111111111")

	token, err := s.GenerateToken(&sub, "authenticated", 0)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "authenticated", claims.Role)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, sub, *id)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestServiceRoleTokenHasNoSubject(t *testing.T) {
	s := newService()

	token, err := s.GenerateToken(nil, "service_role", time.Minute)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestValidateToken_Rejects(t *testing.T) {
	s := newService()
	sub := uuid.New()

	_, err := s.GenerateToken(&sub, "", time.Minute)
	assert.ErrorIs(t, err, ErrMissingRole)

	fallback, err := s.GenerateToken(&sub, "authenticated", -time.Minute)
	require.NoError(t, err)
	_, err = s.ValidateToken(fallback)
	assert.NoError(t, err, "non-positive ttl falls back to the configured expiry")

	other := NewJWTService(config.JWTConfig{Secret: "other", AccessExpiry: time.Hour})
	foreign, err := other.GenerateToken(&sub, "authenticated", time.Minute)
	require.NoError(t, err)
	_, err = s.ValidateToken(foreign)
	assert.Error(t, err)

	_, err = s.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestEmptySecretIsRejected(t *testing.T) {
	s := NewJWTService(config.JWTConfig{AccessExpiry: time.Hour})
	assert.False(t, s.Configured())

	_, err := s.GenerateToken(nil, "service_role", time.Minute)
	assert.ErrorIs(t, err, ErrMissingSecret)

	// a token signed with the empty key must not validate either
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role: "service_role",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(""))
	require.NoError(t, err)

	_, err = s.ValidateToken(forged)
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestGetAccessExpiry(t *testing.T) {
	assert.Equal(t, time.Hour, newService().GetAccessExpiry())
	assert.True(t, newService().Configured())
}
