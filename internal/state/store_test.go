package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"baketrack-backend/internal/model"
)

// fakeFetcher returns its queued snapshots one per call, nil once drained.
type fakeFetcher struct {
	queue []*model.Snapshot
	calls int
}

func (f *fakeFetcher) FetchFullData(ctx context.Context) *model.Snapshot {
	f.calls++
	if len(f.queue) == 0 {
		return nil
	}
	next := f.queue[0]
	f.queue = f.queue[1:]
	return next
}

func snapshotWithProducts(names ...string) *model.Snapshot {
	snap := &model.Snapshot{}
	for i, name := range names {
		snap.Products = append(snap.Products, model.Product{ID: i + 1, Name: name})
	}
	return snap
}

func TestRefresh_SuccessReplacesSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{queue: []*model.Snapshot{snapshotWithProducts("Donat")}}
	store := New(fetcher)

	assert.Nil(t, store.Snapshot())
	assert.True(t, store.Refresh(context.Background()))
	assert.Equal(t, "Donat", store.Snapshot().Products[0].Name)
	assert.False(t, store.Loading())
}

func TestRefresh_FailureKeepsStaleSnapshot(t *testing.T) {
	fetcher := &fakeFetcher{queue: []*model.Snapshot{snapshotWithProducts("Croissant")}}
	store := New(fetcher)

	assert.True(t, store.Refresh(context.Background()))

	// second fetch fails; the stale snapshot must survive
	assert.False(t, store.Refresh(context.Background()))
	assert.NotNil(t, store.Snapshot())
	assert.Equal(t, "Croissant", store.Snapshot().Products[0].Name)
	assert.False(t, store.Loading())
	assert.Equal(t, 2, fetcher.calls)
}

func TestRefresh_FirstFailureLeavesNil(t *testing.T) {
	store := New(&fakeFetcher{})
	assert.False(t, store.Refresh(context.Background()))
	assert.Nil(t, store.Snapshot())
	assert.False(t, store.Loading())
}

func TestPatchLocal_BeforeFirstRefreshIsNoop(t *testing.T) {
	store := New(&fakeFetcher{})
	store.PatchLocal(model.SnapshotPatch{Products: &[]model.Product{{ID: 1, Name: "Cake"}}})
	assert.Nil(t, store.Snapshot())
}

func TestPatchLocal_MergesOnlyProvidedFields(t *testing.T) {
	base := snapshotWithProducts("Donat")
	base.Transactions = []model.Transaction{{ID: "tx-1", Product: "Donat", Qty: 2}}
	base.Profile = model.Profile{Name: "Admin Bakery"}

	store := New(&fakeFetcher{queue: []*model.Snapshot{base}})
	assert.True(t, store.Refresh(context.Background()))

	patched := []model.Product{{ID: 1, Name: "Donat", Stock: 7, Sold: 3}}
	store.PatchLocal(model.SnapshotPatch{Products: &patched})

	snap := store.Snapshot()
	assert.Equal(t, 7, snap.Products[0].Stock)
	// untouched fields are carried over
	assert.Len(t, snap.Transactions, 1)
	assert.Equal(t, "Admin Bakery", snap.Profile.Name)
}

func TestPatchLocal_DoesNotMutatePreviousSnapshot(t *testing.T) {
	store := New(&fakeFetcher{queue: []*model.Snapshot{snapshotWithProducts("Roti")}})
	assert.True(t, store.Refresh(context.Background()))

	before := store.Snapshot()
	store.PatchLocal(model.SnapshotPatch{Products: &[]model.Product{{ID: 9, Name: "Bagel"}}})

	assert.Equal(t, "Roti", before.Products[0].Name)
	assert.Equal(t, "Bagel", store.Snapshot().Products[0].Name)
}

func TestPatchLocal_IsOverwrittenByNextRefresh(t *testing.T) {
	store := New(&fakeFetcher{queue: []*model.Snapshot{
		snapshotWithProducts("Donat"),
		snapshotWithProducts("Cupcake"),
	}})
	assert.True(t, store.Refresh(context.Background()))

	store.PatchLocal(model.SnapshotPatch{Products: &[]model.Product{{ID: 5, Name: "Local Only"}}})
	assert.True(t, store.Refresh(context.Background()))
	assert.Equal(t, "Cupcake", store.Snapshot().Products[0].Name)
}
