package handler

import (
	"github.com/gofiber/fiber/v2"

	"baketrack-backend/internal/relay"
	"baketrack-backend/internal/settings"
	"baketrack-backend/internal/state"
)

// DashboardHandler serves the cached snapshot and the manual sync action.
type DashboardHandler struct {
	state    *state.Store
	settings *settings.Store
}

func NewDashboardHandler(stateStore *state.Store, settingsStore *settings.Store) *DashboardHandler {
	return &DashboardHandler{state: stateStore, settings: settingsStore}
}

// GetData returns the last fetched snapshot.
// GET /api/data
func (h *DashboardHandler) GetData(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"data":           h.state.Snapshot(),
		"loading":        h.state.Loading(),
		"setup_required": !h.settings.Configured(),
	})
}

// Refresh re-fetches everything from the sheet. This is the only way data
// updates outside of a write; there is no polling.
// POST /api/data/refresh
func (h *DashboardHandler) Refresh(c *fiber.Ctx) error {
	if !h.settings.Configured() {
		return c.Status(412).JSON(fiber.Map{"error": "spreadsheet endpoint is not configured", "setup_required": true})
	}
	if !h.state.Refresh(c.Context()) {
		return c.Status(502).JSON(fiber.Map{"error": relay.MsgFetchFailed})
	}
	return c.JSON(fiber.Map{"data": h.state.Snapshot()})
}
