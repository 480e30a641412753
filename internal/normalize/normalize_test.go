package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields_CaseInsensitiveLookup(t *testing.T) {
	variants := []map[string]any{
		{"Name": "Cupcake"},
		{"NAME": "Cupcake"},
		{"name": "Cupcake"},
	}
	for _, raw := range variants {
		f := NewFields(raw)
		assert.Equal(t, "Cupcake", f.String("name"))
		assert.Equal(t, "Cupcake", f.String("NaMe"))
	}
}

func TestFields_NumericCoercion(t *testing.T) {
	f := NewFields(map[string]any{
		"Price":  "15000",
		"Stock":  12.0,
		"Sold":   " 7 ",
		"Broken": "abc",
		"Empty":  nil,
	})

	assert.Equal(t, 15000.0, f.Float("price"))
	assert.Equal(t, 12, f.Int("stock"))
	assert.Equal(t, 7, f.Int("sold"))
	assert.Equal(t, 0.0, f.Float("broken"))
	assert.Equal(t, 0.0, f.Float("empty"))
	assert.Equal(t, 0.0, f.Float("missing"))
}

func TestFields_StringRendersIntegralNumbers(t *testing.T) {
	// JSON numbers arrive as float64; timestamp ids must not grow a
	// decimal point on the way through.
	f := NewFields(map[string]any{"Timestamp": 1706600000000.0})
	assert.Equal(t, "1706600000000", f.String("timestamp"))
}

func TestTransaction_IDDerivation(t *testing.T) {
	withID := Transaction(map[string]any{"Id": "abc", "Timestamp": "999"})
	assert.Equal(t, "abc", withID.ID)

	fromTimestamp := Transaction(map[string]any{"TIMESTAMP": 1706600000000.0})
	assert.Equal(t, "1706600000000", fromTimestamp.ID)

	neither := Transaction(map[string]any{"date": "2024-01-30"})
	assert.Empty(t, neither.ID)
}

func TestTransaction_MixedCasePayloadsNormalizeIdentically(t *testing.T) {
	lower := Transaction(map[string]any{
		"id": "1", "date": "2024-01-30", "product": "Donat", "qty": 3.0, "price": 5000.0, "total": 15000.0,
	})
	upper := Transaction(map[string]any{
		"ID": "1", "DATE": "2024-01-30", "PRODUCT": "Donat", "QTY": 3.0, "PRICE": 5000.0, "TOTAL": 15000.0,
	})
	assert.Equal(t, lower, upper)
	assert.Equal(t, 3, lower.Qty)
	assert.Equal(t, 5000.0, lower.Price)
}

func TestProfile_Defaults(t *testing.T) {
	p := Profile(map[string]any{})
	assert.Equal(t, DefaultProfileName, p.Name)
	assert.Equal(t, DefaultProfileEmail, p.Email)
	assert.Equal(t, DefaultProfilePhoto, p.PhotoURL)
}

func TestProfile_PhotoFallsBackToPhotoColumn(t *testing.T) {
	p := Profile(map[string]any{"Photo": "🧁", "name": "Sari"})
	assert.Equal(t, "🧁", p.PhotoURL)
	assert.Equal(t, "Sari", p.Name)
}

func TestSnapshot_SingularProfile(t *testing.T) {
	var raw map[string]any
	payload := `{
		"transactions": [{"ID": "1", "Date": "2024-01-30", "Product": "Roti", "Qty": 2, "Price": "8000", "Total": 16000}],
		"products": [{"id": 1, "name": "Roti", "price": 8000, "stock": "10", "sold": 5, "image": "🍞"}],
		"profile": {"Name": "Sari", "Email": "sari@bakery.id"}
	}`
	assert.NoError(t, json.Unmarshal([]byte(payload), &raw))

	snap := Snapshot(raw)
	assert.Len(t, snap.Transactions, 1)
	assert.Equal(t, 16000.0, snap.Transactions[0].Total)
	assert.Len(t, snap.Products, 1)
	assert.Equal(t, 10, snap.Products[0].Stock)
	assert.Len(t, snap.Profiles, 1)
	assert.Equal(t, "Sari", snap.Profile.Name)
}

func TestSnapshot_ProfilesListWinsAndFirstIsActive(t *testing.T) {
	raw := map[string]any{
		"profiles": []any{
			map[string]any{"name": "Sari"},
			map[string]any{"name": "Budi"},
		},
		"profile": map[string]any{"name": "Ignored"},
	}
	snap := Snapshot(raw)
	assert.Len(t, snap.Profiles, 2)
	assert.Equal(t, "Sari", snap.Profile.Name)
}

func TestSnapshot_EmptyPayload(t *testing.T) {
	snap := Snapshot(map[string]any{})
	assert.Empty(t, snap.Transactions)
	assert.Empty(t, snap.Products)
	assert.Equal(t, DefaultProfileName, snap.Profile.Name)
}
