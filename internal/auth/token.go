package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, signature-invalid and expired tokens.
// Callers must not be able to tell the cases apart.
var ErrInvalidToken = errors.New("invalid token")

const defaultTokenTTL = 24 * time.Hour

// Claims embeds the registered claims plus the bound user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// TokenIssuer mints and verifies HS256 access tokens. Tokens are
// stateless: expiry lives inside the token, nothing is stored server-side.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer returns a TokenIssuer. If ttl <= 0 a 24h default is used.
func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: secret, ttl: ttl}
}

// Issue returns a signed token bound to userID, expiring after the TTL.
func (i *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(i.secret)
}

// Verify parses and validates tokenString and returns the bound user id.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
