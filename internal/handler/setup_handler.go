package handler

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"baketrack-backend/internal/relay"
	"baketrack-backend/internal/settings"
	"baketrack-backend/pkg/validator"
)

// SetupHandler backs the first-run connection wizard: validating, testing,
// and persisting the spreadsheet endpoint URL.
type SetupHandler struct {
	settings *settings.Store
	relay    *relay.Client
}

func NewSetupHandler(settingsStore *settings.Store, relayClient *relay.Client) *SetupHandler {
	return &SetupHandler{settings: settingsStore, relay: relayClient}
}

// GetConfig reports the current endpoint configuration.
// GET /api/setup/config
func (h *SetupHandler) GetConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"script_url": h.settings.ScriptURL(),
		"configured": h.settings.Configured(),
	})
}

// ConfigRequest represents the save/test request body
type ConfigRequest struct {
	URL string `json:"url" validate:"required,script_url"`
}

// SaveConfig validates and persists the endpoint URL.
// PUT /api/setup/config
func (h *SetupHandler) SaveConfig(c *fiber.Ctx) error {
	var req ConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	req.URL = strings.TrimSpace(req.URL)
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": settings.ErrInvalidScriptURL.Error()})
	}

	if err := h.settings.SetScriptURL(req.URL); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Configuration saved", "script_url": h.settings.ScriptURL()})
}

// TestConnection pings the endpoint through the relay and checks the
// payload is shaped like our sheet script's getData response.
// POST /api/setup/test
func (h *SetupHandler) TestConnection(c *fiber.Ctx) error {
	var req ConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	target := strings.TrimSpace(req.URL)
	if target == "" {
		target = h.settings.ScriptURL()
	}
	if !settings.ValidScriptURL(target) {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": settings.ErrInvalidScriptURL.Error()})
	}

	out := h.relay.Get(c.Context(), relay.AppendQuery(target, "action=getData"))
	if out.Status != 200 {
		return c.Status(out.Status).JSON(fiber.Map{"success": false, "error": out.ErrMsg})
	}

	var payload map[string]any
	if err := json.Unmarshal(out.JSON, &payload); err != nil {
		return c.Status(502).JSON(fiber.Map{"success": false, "error": "Invalid response structure"})
	}
	// Basic shape check to make sure this is OUR script, not just any JSON.
	if _, hasProducts := payload["products"]; !hasProducts {
		if _, hasTransactions := payload["transactions"]; !hasTransactions {
			return c.Status(502).JSON(fiber.Map{"success": false, "error": "Invalid response structure"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "message": "Connection successful"})
}
