package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Identity returns a middleware that resolves the caller identity from a
// bearer token when one is present. Requests without a token pass through
// untouched; authentication enforcement lives in the gateway in front of
// this service, so identity headers remain trusted as-is.
func Identity(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		const bearer = "Bearer "
		if secret == "" || !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return c.Next()
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return c.Next()
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Next()
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Next()
		}

		if userID := stringClaim(claims, "sub", "user_id"); userID != "" {
			c.Locals("user_id", userID)
		}
		if email := stringClaim(claims, "email", "user_email"); email != "" {
			c.Locals("user_email", email)
		}
		if schoolID := stringClaim(claims, "school_id"); schoolID != "" {
			c.Locals("school_id", schoolID)
		}

		return c.Next()
	}
}

func stringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		if value, ok := claims[key]; ok {
			if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}
