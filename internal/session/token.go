package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie the signed session token travels in.
const CookieName = "token"

// Sign mints the session JWT for a user id.
func Sign(userID uuid.UUID, secret string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse verifies a raw token string and returns the user id it names. Used
// where a missing or stale session is an answer rather than an error, such
// as the logged-in probe.
func Parse(raw, secret string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, ErrNoSession
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrNoSession
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, ErrNoSession
	}

	return uuid.Parse(sub)
}
