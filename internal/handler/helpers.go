package handler

import (
	"github.com/gofiber/fiber/v2"

	"baketrack-backend/internal/table"
)

// Helper untuk ambil profile info dari JWT context (set by auth middleware)
func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func getUserEmail(c *fiber.Ctx) string {
	userEmail := c.Locals("user_email")
	if userEmail == nil {
		return ""
	}
	return userEmail.(string)
}

// querySort reads sortKey/sortDir query params into a table sort, with a
// per-endpoint default.
func querySort(c *fiber.Ctx, defaultKey string, defaultDir table.Direction) *table.Sort {
	key := c.Query("sortKey", defaultKey)
	if key == "" {
		return nil
	}
	dir := table.Direction(c.Query("sortDir", string(defaultDir)))
	if dir != table.Asc && dir != table.Desc {
		dir = defaultDir
	}
	return &table.Sort{Key: key, Direction: dir}
}
