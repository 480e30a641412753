package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"baketrack-backend/internal/model"
	"baketrack-backend/internal/service"
	"baketrack-backend/internal/state"
	"baketrack-backend/internal/table"
)

type ProductHandler struct {
	service service.ProductService
	state   *state.Store
}

func NewProductHandler(s service.ProductService, stateStore *state.Store) *ProductHandler {
	return &ProductHandler{service: s, state: stateStore}
}

func productField(p model.Product, key string) any {
	switch key {
	case "name":
		return p.Name
	case "price":
		return p.Price
	case "stock":
		return p.Stock
	case "sold":
		return p.Sold
	default:
		return p.ID
	}
}

// List serves the paged catalog.
// GET /api/products?query=&sortKey=&sortDir=&page=&pageSize=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var records []model.Product
	if snap := h.state.Snapshot(); snap != nil {
		records = snap.Products
	}

	page := table.Apply(records, table.Query[model.Product]{
		Search: c.Query("query"),
		Match: func(p model.Product, q string) bool {
			return table.ContainsFold(p.Name, q)
		},
		Sort:     querySort(c, "name", table.Asc),
		Field:    productField,
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 20),
	})
	return c.JSON(page)
}

func (h *ProductHandler) manage(c *fiber.Ctx, action model.ManageAction) error {
	var product model.Product
	if action != model.ActionDelete {
		if err := c.BodyParser(&product); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
		}
	}
	if action != model.ActionCreate {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		product.ID = id
	}

	if err := h.service.Manage(c.Context(), action, &product); err != nil {
		status := 400
		if errors.Is(err, service.ErrProductSaveFailed) {
			status = 502
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	switch action {
	case model.ActionCreate:
		return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
	case model.ActionUpdate:
		return c.JSON(fiber.Map{"message": "Product updated", "data": product})
	default:
		return c.JSON(fiber.Map{"message": "Product deleted"})
	}
}

// Create adds a catalog entry.
// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	return h.manage(c, model.ActionCreate)
}

// Update edits a catalog entry.
// PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	return h.manage(c, model.ActionUpdate)
}

// Delete removes a catalog entry.
// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	return h.manage(c, model.ActionDelete)
}
