package model

import (
	"strconv"
	"time"
)

// Transaction is one sale row from the spreadsheet. The ID is a string key
// (the sheet's Column A timestamp for rows created by the app) and stays
// stable across edits.
type Transaction struct {
	ID      string  `json:"id,omitempty"`
	Date    string  `json:"date" validate:"required"`
	Product string  `json:"product" validate:"required"`
	Qty     int     `json:"qty" validate:"required,gt=0"`
	Price   float64 `json:"price" validate:"gte=0"`
	Total   float64 `json:"total"`
	AddedBy string  `json:"addedBy,omitempty"`
}

// EnsureID fills a missing ID from the current time, mirroring how the
// sheet script keys new rows. Existing IDs are never replaced.
func (t *Transaction) EnsureID() {
	if t.ID == "" {
		t.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
}

// RecomputeTotal overwrites Total with Qty * Price. Caller-supplied totals
// are never trusted on a write path.
func (t *Transaction) RecomputeTotal() {
	t.Total = float64(t.Qty) * t.Price
}
