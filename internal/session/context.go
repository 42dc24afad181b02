// Package session resolves the authenticated principal from the JWT the
// cookie middleware has already verified and stashed in the request context.
package session

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no valid session in context")

// UserID extracts the account id from the verified token's sub claim.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
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
