package service

import (
	"context"

	"baketrack-backend/internal/model"
)

// SheetAPI is what the services need from the spreadsheet client. All
// write operations report success as a bare bool; failure details are in
// the logs, not the return.
type SheetAPI interface {
	FetchFullData(ctx context.Context) *model.Snapshot
	SubmitTransaction(ctx context.Context, tx model.Transaction, isUpdate bool) bool
	DeleteTransaction(ctx context.Context, id string) bool
	ManageProduct(ctx context.Context, action model.ManageAction, product model.Product) bool
	UpdateProfile(ctx context.Context, profile model.Profile) bool
}
