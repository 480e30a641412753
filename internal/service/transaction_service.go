package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"baketrack-backend/internal/model"
	"baketrack-backend/internal/state"
	"baketrack-backend/internal/ws"
	"baketrack-backend/pkg/validator"
)

var (
	ErrWriteFailed       = errors.New("failed to save to spreadsheet")
	ErrDeleteFailed      = errors.New("failed to delete from spreadsheet")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrMissingID         = errors.New("transaction id is required")
)

type TransactionService interface {
	Submit(ctx context.Context, req *model.Transaction, isUpdate bool, addedBy string) error
	Delete(ctx context.Context, id string) error
}

type transactionService struct {
	sheets SheetAPI
	state  *state.Store
	wsHub  *ws.Hub
	log    *logrus.Logger
}

func NewTransactionService(sheets SheetAPI, stateStore *state.Store, hub *ws.Hub, log *logrus.Logger) TransactionService {
	return &transactionService{
		sheets: sheets,
		state:  stateStore,
		wsHub:  hub,
		log:    log,
	}
}

// Submit records a sale (or edits one when isUpdate). Validation runs
// before any network call; the total is recomputed from qty and price so a
// stale caller total never reaches the sheet. Creating a sale also
// decrements the product's stock and bumps its sold counter; editing or
// deleting does not touch those counters (matching the sheet script's
// behavior, even though it leaves inventory unreconciled after an edit).
func (s *transactionService) Submit(ctx context.Context, req *model.Transaction, isUpdate bool, addedBy string) error {
	// 1. Validate input
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	req.RecomputeTotal()
	req.EnsureID()
	if addedBy != "" {
		req.AddedBy = addedBy
	}

	// 2. Stock check, creates only. Edits skip it because the original
	// quantity is already baked into the counters.
	var product *model.Product
	if snap := s.state.Snapshot(); snap != nil {
		product = snap.FindProductByName(req.Product)
	}
	if !isUpdate && product != nil && req.Qty > product.Stock {
		return ErrInsufficientStock
	}

	// 3. Write the sale row
	if !s.sheets.SubmitTransaction(ctx, *req, isUpdate) {
		return ErrWriteFailed
	}

	// 4. Adjust inventory counters on create
	if !isUpdate && product != nil {
		updated := *product
		updated.Stock = max(0, updated.Stock-req.Qty)
		updated.Sold += req.Qty
		if !s.sheets.ManageProduct(ctx, model.ActionUpdate, updated) {
			// The sale itself is saved; a failed counter update is
			// corrected by the next manual sheet edit.
			s.log.WithField("product", updated.Name).Warn("transaction: stock/sold update failed")
		}
	}

	// 5. Re-pull everything and nudge open pages
	s.state.Refresh(ctx)
	verb := "created"
	if isUpdate {
		verb = "updated"
	}
	s.wsHub.NotifyDataUpdate("transaction_"+verb, fmt.Sprintf("%s %s a sale of %d x %s", req.AddedBy, verb, req.Qty, req.Product))
	return nil
}

// Delete removes one sale by id. Stock and sold stay as they are.
func (s *transactionService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	if !s.sheets.DeleteTransaction(ctx, id) {
		return ErrDeleteFailed
	}
	s.state.Refresh(ctx)
	s.wsHub.NotifyDataUpdate("transaction_deleted", "a sale was removed")
	return nil
}
