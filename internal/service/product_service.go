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
	ErrInvalidAction     = errors.New("unknown product action")
	ErrMissingProductID  = errors.New("product id is required")
	ErrProductSaveFailed = errors.New("failed to save product to spreadsheet")
)

type ProductService interface {
	Manage(ctx context.Context, action model.ManageAction, req *model.Product) error
}

type productService struct {
	sheets SheetAPI
	state  *state.Store
	wsHub  *ws.Hub
	log    *logrus.Logger
}

func NewProductService(sheets SheetAPI, stateStore *state.Store, hub *ws.Hub, log *logrus.Logger) ProductService {
	return &productService{
		sheets: sheets,
		state:  stateStore,
		wsHub:  hub,
		log:    log,
	}
}

// Manage applies one catalog change. Create and update validate the full
// record; delete only needs the id.
func (s *productService) Manage(ctx context.Context, action model.ManageAction, req *model.Product) error {
	if !action.Valid() {
		return ErrInvalidAction
	}

	switch action {
	case model.ActionDelete:
		if req.ID == 0 {
			return ErrMissingProductID
		}
	default:
		if errs := validator.ValidateStruct(req); len(errs) > 0 {
			firstErr := errs[0]
			return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
		}
	}

	if !s.sheets.ManageProduct(ctx, action, *req) {
		return ErrProductSaveFailed
	}

	s.state.Refresh(ctx)
	s.wsHub.NotifyDataUpdate("product_"+string(action), fmt.Sprintf("catalog %s: %s", action, req.Name))
	return nil
}
