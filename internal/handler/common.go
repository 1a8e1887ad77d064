package handler

import (
	"time"

	"go-pos-dashboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Helper to pull the acting username from JWT context (set by auth middleware)
func actingUsername(c *fiber.Ctx) string {
	username := c.Locals("username")
	if username == nil {
		return "system"
	}
	return username.(string)
}

// serviceError maps the service error taxonomy onto HTTP status codes.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindValidation:
		status = fiber.StatusBadRequest
	case service.KindConflict:
		status = fiber.StatusConflict
	case service.KindUnauthorized:
		status = fiber.StatusUnauthorized
	case service.KindNotFound:
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// parseDateRange reads inclusive start/end query params (YYYY-MM-DD),
// defaulting to the trailing 30 days.
func parseDateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	start := now.AddDate(0, 0, -30)
	end := now

	if v := c.Query("start"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, err
		}
		start = parsed
	}
	if v := c.Query("end"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return start, end, err
		}
		// Inclusive end: push to end of day.
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end, nil
}
