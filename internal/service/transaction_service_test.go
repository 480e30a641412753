package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baketrack-backend/internal/model"
	"baketrack-backend/internal/state"
	"baketrack-backend/internal/ws"
)

// fakeSheets records every call. Zero value succeeds; flip the fail flags
// to simulate upstream write failures.
type fakeSheets struct {
	mu sync.Mutex

	snapshot *model.Snapshot

	failSubmit  bool
	failDelete  bool
	failManage  bool
	failProfile bool

	fetchCalls  int
	submitted   []model.Transaction
	submitFlags []bool // isUpdate per submitted entry
	managed     []model.Product
	actions     []model.ManageAction
	deletedIDs  []string
	profiles    []model.Profile
}

func (f *fakeSheets) FetchFullData(ctx context.Context) *model.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	return f.snapshot
}

func (f *fakeSheets) SubmitTransaction(ctx context.Context, tx model.Transaction, isUpdate bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSubmit {
		return false
	}
	f.submitted = append(f.submitted, tx)
	f.submitFlags = append(f.submitFlags, isUpdate)
	return true
}

func (f *fakeSheets) DeleteTransaction(ctx context.Context, id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return false
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return true
}

func (f *fakeSheets) ManageProduct(ctx context.Context, action model.ManageAction, product model.Product) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failManage {
		return false
	}
	f.managed = append(f.managed, product)
	f.actions = append(f.actions, action)
	return true
}

func (f *fakeSheets) UpdateProfile(ctx context.Context, profile model.Profile) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failProfile {
		return false
	}
	f.profiles = append(f.profiles, profile)
	return true
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func runningHub() *ws.Hub {
	hub := ws.NewHub()
	go hub.Run()
	return hub
}

func catalogSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Products: []model.Product{
			{ID: 1, Name: "Donat", Price: 5000, Stock: 10, Sold: 2},
			{ID: 2, Name: "Croissant", Price: 8000, Stock: 3, Sold: 0},
		},
	}
}

// newTxService also pre-loads the state store from the fake's snapshot so
// the stock check has a catalog to consult.
func newTxService(t *testing.T, sheets *fakeSheets) (TransactionService, *state.Store) {
	t.Helper()
	stateStore := state.New(sheets)
	if sheets.snapshot != nil {
		require.True(t, stateStore.Refresh(context.Background()))
		sheets.mu.Lock()
		sheets.fetchCalls = 0
		sheets.mu.Unlock()
	}
	return NewTransactionService(sheets, stateStore, runningHub(), testLogger()), stateStore
}

func TestSubmit_CreateRecomputesTotalAndAdjustsCounters(t *testing.T) {
	sheets := &fakeSheets{snapshot: catalogSnapshot()}
	svc, _ := newTxService(t, sheets)

	tx := model.Transaction{Date: "2024-03-01", Product: "Donat", Qty: 4, Price: 5000, Total: 99}
	require.NoError(t, svc.Submit(context.Background(), &tx, false, "Admin Bakery"))

	require.Len(t, sheets.submitted, 1)
	sent := sheets.submitted[0]
	assert.Equal(t, float64(20000), sent.Total) // stale caller total discarded
	assert.Equal(t, "Admin Bakery", sent.AddedBy)
	assert.NotEmpty(t, sent.ID)
	assert.False(t, sheets.submitFlags[0])

	require.Len(t, sheets.managed, 1)
	assert.Equal(t, model.ActionUpdate, sheets.actions[0])
	assert.Equal(t, 6, sheets.managed[0].Stock) // 10 - 4
	assert.Equal(t, 6, sheets.managed[0].Sold)  // 2 + 4
	assert.Equal(t, 1, sheets.fetchCalls)       // post-write refresh
}

func TestSubmit_UpdateLeavesCountersAlone(t *testing.T) {
	sheets := &fakeSheets{snapshot: catalogSnapshot()}
	svc, _ := newTxService(t, sheets)

	tx := model.Transaction{ID: "tx-1", Date: "2024-03-01", Product: "Donat", Qty: 9, Price: 5000}
	require.NoError(t, svc.Submit(context.Background(), &tx, true, ""))

	require.Len(t, sheets.submitted, 1)
	assert.True(t, sheets.submitFlags[0])
	// editing a sale never touches stock/sold, so no product write happens
	assert.Empty(t, sheets.managed)
}

func TestSubmit_CreateRejectsInsufficientStock(t *testing.T) {
	sheets := &fakeSheets{snapshot: catalogSnapshot()}
	svc, _ := newTxService(t, sheets)

	tx := model.Transaction{Date: "2024-03-01", Product: "Croissant", Qty: 5, Price: 8000}
	err := svc.Submit(context.Background(), &tx, false, "")
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Empty(t, sheets.submitted) // rejected before any write
}

func TestSubmit_UpdateSkipsStockCheck(t *testing.T) {
	sheets := &fakeSheets{snapshot: catalogSnapshot()}
	svc, _ := newTxService(t, sheets)

	// qty above stock is fine on edit, the original qty is already counted
	tx := model.Transaction{ID: "tx-1", Date: "2024-03-01", Product: "Croissant", Qty: 50, Price: 8000}
	assert.NoError(t, svc.Submit(context.Background(), &tx, true, ""))
}

func TestSubmit_UnknownProductSkipsCounters(t *testing.T) {
	sheets := &fakeSheets{snapshot: catalogSnapshot()}
	svc, _ := newTxService(t, sheets)

	tx := model.Transaction{Date: "2024-03-01", Product: "Brownies", Qty: 2, Price: 12000}
	require.NoError(t, svc.Submit(context.Background(), &tx, false, ""))
	require.Len(t, sheets.submitted, 1)
	assert.Empty(t, sheets.managed)
}

func TestSubmit_ValidationBlocksBeforeNetwork(t *testing.T) {
	sheets := &fakeSheets{snapshot: catalogSnapshot()}
	svc, _ := newTxService(t, sheets)

	tests := []model.Transaction{
		{Product: "Donat", Qty: 1, Price: 5000},        // missing date
		{Date: "2024-03-01", Qty: 1, Price: 5000},      // missing product
		{Date: "2024-03-01", Product: "Donat", Qty: 0}, // non-positive qty
	}
	for _, tx := range tests {
		tx := tx
		assert.Error(t, svc.Submit(context.Background(), &tx, false, ""))
	}
	assert.Empty(t, sheets.submitted)
	assert.Zero(t, sheets.fetchCalls)
}

func TestSubmit_WriteFailure(t *testing.T) {
	sheets := &fakeSheets{snapshot: catalogSnapshot(), failSubmit: true}
	svc, _ := newTxService(t, sheets)

	tx := model.Transaction{Date: "2024-03-01", Product: "Donat", Qty: 1, Price: 5000}
	assert.ErrorIs(t, svc.Submit(context.Background(), &tx, false, ""), ErrWriteFailed)
	assert.Empty(t, sheets.managed) // no counter write after a failed sale
}

func TestSubmit_CounterWriteFailureDoesNotFailTheSale(t *testing.T) {
	sheets := &fakeSheets{snapshot: catalogSnapshot(), failManage: true}
	svc, _ := newTxService(t, sheets)

	tx := model.Transaction{Date: "2024-03-01", Product: "Donat", Qty: 1, Price: 5000}
	assert.NoError(t, svc.Submit(context.Background(), &tx, false, ""))
	require.Len(t, sheets.submitted, 1)
}

func TestDelete_LeavesCountersAlone(t *testing.T) {
	sheets := &fakeSheets{snapshot: catalogSnapshot()}
	svc, _ := newTxService(t, sheets)

	require.NoError(t, svc.Delete(context.Background(), "tx-9"))
	assert.Equal(t, []string{"tx-9"}, sheets.deletedIDs)
	// deleting a sale does not restock the product
	assert.Empty(t, sheets.managed)
	assert.Equal(t, 1, sheets.fetchCalls)
}

func TestDelete_RequiresID(t *testing.T) {
	sheets := &fakeSheets{snapshot: catalogSnapshot()}
	svc, _ := newTxService(t, sheets)
	assert.ErrorIs(t, svc.Delete(context.Background(), ""), ErrMissingID)
}

func TestDelete_UpstreamFailure(t *testing.T) {
	sheets := &fakeSheets{snapshot: catalogSnapshot(), failDelete: true}
	svc, _ := newTxService(t, sheets)
	assert.ErrorIs(t, svc.Delete(context.Background(), "tx-1"), ErrDeleteFailed)
}
