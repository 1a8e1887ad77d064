package handler

import (
	"go-pos-dashboard/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// SettingsHandler exposes the store configuration (name, UPI id, tax flag
// and rate) read by the billing screen and updated by admins.
type SettingsHandler struct {
	settingRepo repository.SettingRepository
}

func NewSettingsHandler(repo repository.SettingRepository) *SettingsHandler {
	return &SettingsHandler{settingRepo: repo}
}

func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settingRepo.GetAll()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch settings"})
	}
	return c.JSON(settings)
}

// UpdateSettings upserts the posted key/value pairs (admin only)
// PUT /api/v1/settings
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var req map[string]string
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	for key, value := range req {
		if err := h.settingRepo.Set(key, value); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to update setting '" + key + "'"})
		}
	}
	return c.JSON(fiber.Map{"message": "Settings updated"})
}
