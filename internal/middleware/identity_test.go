package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newIdentityTestApp(secret string) *fiber.App {
	app := fiber.New()
	app.Use(Identity(secret))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		identity := map[string]interface{}{}
		for _, key := range []string{"user_id", "user_email", "school_id"} {
			if v := c.Locals(key); v != nil {
				identity[key] = v
			}
		}
		return c.JSON(identity)
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestIdentityResolvesClaims(t *testing.T) {
	app := newIdentityTestApp("secret")

	token := signToken(t, "secret", jwt.MapClaims{
		"sub":       "u1",
		"email":     "teacher@example.com",
		"school_id": "s1",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var identity map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&identity))
	require.Equal(t, "u1", identity["user_id"])
	require.Equal(t, "teacher@example.com", identity["user_email"])
	require.Equal(t, "s1", identity["school_id"])
}

func TestIdentityPassesThroughWithoutToken(t *testing.T) {
	app := newIdentityTestApp("secret")

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/whoami", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var identity map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&identity))
	require.Empty(t, identity, "no token means no resolved identity, not a rejection")
}

func TestIdentityIgnoresInvalidToken(t *testing.T) {
	app := newIdentityTestApp("secret")

	token := signToken(t, "wrong-secret", jwt.MapClaims{"sub": "u1"})
	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "a bad token must not block the request")

	var identity map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&identity))
	require.Empty(t, identity)
}
