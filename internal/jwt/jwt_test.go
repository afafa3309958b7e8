package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTestKeys(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	UseKeys(key)
}

func TestSignAndValidate(t *testing.T) {
	useTestKeys(t)
	a := assert.New(t)

	signed, err := Sign("player-18", false)
	a.NoError(err)

	claims, err := Validate(signed)
	a.NoError(err)
	a.Equal("player-18", claims.Subject)
	a.False(claims.Admin)

	signed, err = Sign("admin-1", true)
	a.NoError(err)

	claims, err = Validate(signed)
	a.NoError(err)
	a.True(claims.Admin)
}

func signWith(t *testing.T, claims jwtgo.Claims) string {
	t.Helper()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims)
	signed, err := token.SignedString(privateKey)
	require.NoError(t, err)
	return signed
}

func TestValidate_invalidAudience(t *testing.T) {
	useTestKeys(t)

	signed := signWith(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  "player-15",
	})

	claims, err := Validate(signed)
	assert.EqualError(t, err, "invalid audience")
	assert.Nil(t, claims)
}

func TestValidate_invalidIssuer(t *testing.T) {
	useTestKeys(t)

	signed := signWith(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  "player-15",
	})

	claims, err := Validate(signed)
	assert.EqualError(t, err, "invalid issuer")
	assert.Nil(t, claims)
}

func TestValidate_expired(t *testing.T) {
	useTestKeys(t)

	signed := signWith(t, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now()),
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(time.Hour * -1)),
		Issuer:    Issuer,
		Subject:   "player-15",
	})

	claims, err := Validate(signed)
	if assert.Error(t, err) {
		assert.Regexp(t, "token is expired", err.Error())
	}
	assert.Nil(t, claims)
}

func TestValidate_missingSubject(t *testing.T) {
	useTestKeys(t)

	signed := signWith(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
	})

	_, err := Validate(signed)
	assert.EqualError(t, err, "missing subject")
}
