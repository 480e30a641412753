package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"baketrack-backend/internal/model"
	"baketrack-backend/internal/service"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(s service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: s}
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photourl"`
}

// Update writes the display profile to the sheet.
// PUT /api/profile
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	// An omitted email keeps the one from the session token.
	if req.Email == "" {
		req.Email = getUserEmail(c)
	}

	profile := model.Profile{Name: req.Name, Email: req.Email, PhotoURL: req.PhotoURL}
	if err := h.service.Update(c.Context(), &profile); err != nil {
		status := 400
		if errors.Is(err, service.ErrProfileSaveFailed) {
			status = 502
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Profile updated", "data": profile})
}
