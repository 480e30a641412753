package handler

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"baketrack-backend/internal/service"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// Summary returns omzet, estimated laba, and AOV totals.
// GET /api/report/summary
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.service.Summary())
}

// TopProducts returns the best sellers (default top 3).
// GET /api/report/top-products?limit=3
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.TopProducts(c.QueryInt("limit", 3)))
}

// Weekly returns Monday-first day-of-week omzet/laba buckets.
// GET /api/report/weekly
func (h *ReportHandler) Weekly(c *fiber.Ctx) error {
	return c.JSON(h.service.Weekly())
}

// Export streams the sales report as csv (default) or xlsx.
// GET /api/report/export?format=csv|xlsx
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	switch c.Query("format", "csv") {
	case "xlsx":
		f, err := h.service.ExportXLSX()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
		}
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
		}
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.ExportFilename("xlsx")+`"`)
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())

	case "csv":
		var buf bytes.Buffer
		if err := h.service.ExportCSV(&buf); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to build report"})
		}
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+service.ExportFilename("csv")+`"`)
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
		return c.Send(buf.Bytes())

	default:
		return c.Status(400).JSON(fiber.Map{"error": "Unknown export format"})
	}
}
