package service

import (
	"testing"
	"time"

	"acservice/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)
	user := &model.User{ID: uuid.New(), Role: model.RoleUser}

	token, exp, err := issuer.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestTokenIssuerRejects(t *testing.T) {
	issuer := NewTokenIssuer([]byte("secret"), time.Hour)
	user := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	expired := NewTokenIssuer([]byte("secret"), time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, _, err := expired.Issue(user)
	require.NoError(t, err)
	_, err = issuer.Parse(old)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	forged, _, err := NewTokenIssuer([]byte("other"), time.Hour).Issue(user)
	require.NoError(t, err)
	_, err = issuer.Parse(forged)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	noRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = issuer.Parse(noRole)
	assert.EqualError(t, err, "role not found in token")
}

func TestTokenIssuerDefaultTTL(t *testing.T) {
	assert.Equal(t, 24*time.Hour, NewTokenIssuer([]byte("s"), 0).ttl)
}
