package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	userIDHeader   = "X-User-ID"
	contextUserKey = "pulselog_user_id"
)

// RequireUser resolves the caller from the X-User-ID header. Every /api
// route is scoped to a single user; there is no cross-user access.
func (handler *Handler) RequireUser(c *fiber.Ctx) error {
	rawUserID := strings.TrimSpace(c.Get(userIDHeader))
	if rawUserID == "" {
		return apiError(c, fiber.StatusUnauthorized, "missing X-User-ID header")
	}
	parsed, err := uuid.Parse(rawUserID)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "invalid X-User-ID header")
	}

	c.Locals(contextUserKey, parsed.String())
	return c.Next()
}

func currentUserID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(contextUserKey).(string)
	return userID, ok && userID != ""
}
