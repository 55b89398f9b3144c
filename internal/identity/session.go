package identity

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const localsUserID = "user_id"

// RequireSession verifies the provider-issued session JWT and stores
// the caller's user id in the request locals. Requests without a valid
// bearer token are rejected.
func RequireSession(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := sessionUserID(c, secret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}
		c.Locals(localsUserID, uid)
		return c.Next()
	}
}

// OptionalSession is RequireSession without the rejection: view
// endpoints use it to know whether a caller is signed in.
func OptionalSession(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if uid, err := sessionUserID(c, secret); err == nil {
			c.Locals(localsUserID, uid)
		}
		return c.Next()
	}
}

// CallerID returns the authenticated caller's user id, or "" when the
// request carries no session.
func CallerID(c *fiber.Ctx) string {
	if uid, ok := c.Locals(localsUserID).(string); ok {
		return uid
	}
	return ""
}

func sessionUserID(c *fiber.Ctx, secret []byte) (string, error) {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", jwt.ErrTokenMalformed
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", jwt.ErrTokenSignatureInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", jwt.ErrTokenInvalidClaims
	}

	uid, ok := claims["sub"].(string)
	if !ok || strings.TrimSpace(uid) == "" {
		// Older tokens carried the id under user_id.
		uid, ok = claims["user_id"].(string)
		if !ok || strings.TrimSpace(uid) == "" {
			return "", jwt.ErrTokenInvalidClaims
		}
	}

	return uid, nil
}
