// Package jwt signs and validates the bearer tokens players present
package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pokertable-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "pokertable-server"

// Audience is the intended JWT audience
const Audience = "pokertable"

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// Claims are the claims carried by a signed token. The subject is the player
// ID; Admin grants access to the admin endpoints.
type Claims struct {
	jwtgo.RegisteredClaims
	Admin bool `json:"admin,omitempty"`
}

// LoadKeys will load the public and private keys
// this method should only be called once.
func LoadKeys() {
	cfg := config.Instance().JWT
	privateKey = loadPrivateKey(cfg.PrivateKey)
	publicKey = loadPublicKey(cfg.PublicKey)
}

// UseKeys installs an explicit key pair instead of loading from disk.
// Tests use this to avoid shipping key fixtures.
func UseKeys(key *rsa.PrivateKey) {
	privateKey = key
	publicKey = &key.PublicKey
}

// Sign will sign a JWT for the player ID
func Sign(playerID string, admin bool) (string, error) {
	if privateKey == nil {
		panic("LoadKeys() not called")
	}

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, Claims{
		RegisteredClaims: jwtgo.RegisteredClaims{
			Audience: jwtgo.ClaimStrings{Audience},
			ID:       uuid.New().String(),
			IssuedAt: jwtgo.NewNumericDate(time.Now()),
			Issuer:   Issuer,
			Subject:  playerID,
		},
		Admin: admin,
	})

	return token.SignedString(privateKey)
}

// Validate will validate a signed JWT and return its claims
func Validate(signedString string) (*Claims, error) {
	if publicKey == nil {
		panic("LoadKeys() not called")
	}

	token, err := jwtgo.ParseWithClaims(signedString, &Claims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return publicKey, nil
	})

	if err != nil {
		return nil, err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*Claims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return nil, errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return nil, errors.New("invalid issuer")
			}

			if claims.Subject == "" {
				return nil, errors.New("missing subject")
			}

			return claims, nil
		}

		return nil, fmt.Errorf("expected jwt.Claims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return nil, errors.New("claims were not valid")
}

func loadPublicKey(path string) *rsa.PublicKey {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not read file")
	}

	pem, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA public key")
	}

	return pem
}

func loadPrivateKey(path string) *rsa.PrivateKey {
	b, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Fatal("could not read file")
	}

	pem, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		logrus.WithError(err).Fatal("could not parse RSA private key")
	}

	return pem
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
