package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid is returned for any token failure: missing, malformed,
// expired, or signed with the wrong secret. The causes are deliberately
// collapsed so callers cannot enumerate them.
var ErrTokenInvalid = errors.New("invalid or expired token")

// TokenService issues and validates signed, time-limited identity tokens.
// Tokens are stateless: nothing is persisted server-side, and rotating the
// secret invalidates every outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given HMAC secret and
// token lifetime.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a new signed JWT bound to the given user ID.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		Issuer:    "userhub",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifies a token's signature and expiry and returns the subject
// user ID. Expiry is strict; no clock-skew leeway is applied.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
