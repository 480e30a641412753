package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"baketrack-backend/internal/model"
	"baketrack-backend/internal/service"
	"baketrack-backend/internal/state"
	"baketrack-backend/internal/table"
)

type TransactionHandler struct {
	service service.TransactionService
	state   *state.Store
}

func NewTransactionHandler(s service.TransactionService, stateStore *state.Store) *TransactionHandler {
	return &TransactionHandler{service: s, state: stateStore}
}

func transactionField(t model.Transaction, key string) any {
	switch key {
	case "date":
		return t.Date
	case "product":
		return t.Product
	case "qty":
		return t.Qty
	case "price":
		return t.Price
	case "total":
		return t.Total
	default:
		return t.ID
	}
}

// List serves the paged transaction table.
// GET /api/transactions?query=&sortKey=&sortDir=&page=&pageSize=
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	var records []model.Transaction
	if snap := h.state.Snapshot(); snap != nil {
		records = snap.Transactions
	}

	page := table.Apply(records, table.Query[model.Transaction]{
		Search: c.Query("query"),
		Match: func(t model.Transaction, q string) bool {
			return table.ContainsFold(t.Product, q)
		},
		Sort:     querySort(c, "date", table.Desc),
		Field:    transactionField,
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", 20),
	})
	return c.JSON(page)
}

func (h *TransactionHandler) submit(c *fiber.Ctx, isUpdate bool) error {
	var tx model.Transaction
	if err := c.BodyParser(&tx); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if isUpdate {
		tx.ID = c.Params("id")
		if tx.ID == "" {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
		}
	}

	if err := h.service.Submit(c.Context(), &tx, isUpdate, getUserName(c)); err != nil {
		status := 400
		if errors.Is(err, service.ErrWriteFailed) {
			status = 502
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if isUpdate {
		return c.JSON(fiber.Map{"message": "Transaction updated", "data": tx})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})
}

// Create records a new sale.
// POST /api/transactions
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	return h.submit(c, false)
}

// Update edits an existing sale in place, keeping its id.
// PUT /api/transactions/:id
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	return h.submit(c, true)
}

// Delete removes a sale.
// DELETE /api/transactions/:id
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		status := 400
		if errors.Is(err, service.ErrDeleteFailed) {
			status = 502
		}
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}
