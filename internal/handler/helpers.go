package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/schooldesk/examvault-api/internal/service"
)

func parseQueryInt(c *fiber.Ctx, key string, fallback int) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

// localOrHeader prefers an identity value resolved by middleware over the
// raw request header of the same name.
func localOrHeader(c *fiber.Ctx, key string) string {
	if v := c.Locals(key); v != nil {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return strings.TrimSpace(c.Get(key))
}

func actorFromRequest(c *fiber.Ctx) service.Actor {
	return service.Actor{
		UserID:    localOrHeader(c, "user_id"),
		UserEmail: localOrHeader(c, "user_email"),
		SchoolID:  localOrHeader(c, "school_id"),
	}
}
