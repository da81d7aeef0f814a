package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const queryDateLayout = "2006-01-02"

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// parseDaysQuery reads an optional ?days= query parameter, falling back
// to defaultDays and rejecting values outside [1, maxDays].
func parseDaysQuery(c *fiber.Ctx, defaultDays int, maxDays int) (int, error) {
	raw := strings.TrimSpace(c.Query("days"))
	if raw == "" {
		return defaultDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > maxDays {
		return 0, fmt.Errorf("days must be an integer between 1 and %d", maxDays)
	}
	return days, nil
}

func parseDateQuery(c *fiber.Ctx, name string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is required (YYYY-MM-DD)", name)
	}
	parsed, err := time.ParseInLocation(queryDateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a YYYY-MM-DD date", name)
	}
	return parsed, nil
}

func parseBoolQuery(c *fiber.Ctx, name string) bool {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return false
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return parsed
}
