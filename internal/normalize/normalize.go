// Package normalize converts the loosely typed JSON the sheet script
// returns into strict domain records. Sheet headers decide the key casing,
// so every lookup here ignores case, and numeric cells that arrive as
// strings are coerced before they can reach arithmetic paths. Missing or
// non-numeric values coerce to zero.
package normalize

import (
	"strconv"
	"strings"

	"baketrack-backend/internal/model"
)

// Defaults applied when the profile sheet is missing columns.
const (
	DefaultProfileName  = "Admin Bakery"
	DefaultProfileEmail = "admin@baketrack.com"
	DefaultProfilePhoto = "👩‍🍳"
)

// Fields wraps one raw sheet object with case-insensitive key access.
// Keys are lowercased once up front; when two source keys collide after
// lowercasing, the first one wins.
type Fields map[string]any

func NewFields(src map[string]any) Fields {
	f := make(Fields, len(src))
	for k, v := range src {
		lk := strings.ToLower(k)
		if _, exists := f[lk]; !exists {
			f[lk] = v
		}
	}
	return f
}

// String returns the value under key rendered as a string. Integral
// numbers render without a decimal point so timestamp cells survive the
// float64 round trip through encoding/json.
func (f Fields) String(key string) string {
	v, ok := f[strings.ToLower(key)]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// Float coerces the value under key to a number. Numeric strings parse;
// everything else is 0.
func (f Fields) Float(key string) float64 {
	v, ok := f[strings.ToLower(key)]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Int truncates Float toward zero.
func (f Fields) Int(key string) int {
	return int(f.Float(key))
}

// Transaction maps one raw sheet row. The id prefers an explicit id
// column, then the timestamp column; otherwise it stays empty and the
// caller synthesizes one.
func Transaction(raw map[string]any) model.Transaction {
	f := NewFields(raw)
	id := f.String("id")
	if id == "" {
		id = f.String("timestamp")
	}
	return model.Transaction{
		ID:      id,
		Date:    f.String("date"),
		Product: f.String("product"),
		Qty:     f.Int("qty"),
		Price:   f.Float("price"),
		Total:   f.Float("total"),
		AddedBy: f.String("addedBy"),
	}
}

func Product(raw map[string]any) model.Product {
	f := NewFields(raw)
	return model.Product{
		ID:    f.Int("id"),
		Name:  f.String("name"),
		Price: f.Float("price"),
		Cost:  f.Float("cost"),
		Stock: f.Int("stock"),
		Sold:  f.Int("sold"),
		Image: f.String("image"),
	}
}

func Profile(raw map[string]any) model.Profile {
	f := NewFields(raw)
	photo := f.String("photourl")
	if photo == "" {
		photo = f.String("photo")
	}
	p := model.Profile{
		Name:     f.String("name"),
		Email:    f.String("email"),
		PhotoURL: photo,
		Password: f.String("password"),
	}
	if p.Name == "" {
		p.Name = DefaultProfileName
	}
	if p.Email == "" {
		p.Email = DefaultProfileEmail
	}
	if p.PhotoURL == "" {
		p.PhotoURL = DefaultProfilePhoto
	}
	return p
}

// Snapshot shapes a full getData payload. The payload may carry a singular
// "profile", a "profiles" list, or both; the active profile is the first
// list element, falling back to the singular object.
func Snapshot(raw map[string]any) *model.Snapshot {
	f := NewFields(raw)
	snap := &model.Snapshot{
		Transactions: []model.Transaction{},
		Products:     []model.Product{},
		Profiles:     []model.Profile{},
	}

	if rows, ok := f["transactions"].([]any); ok {
		for _, row := range rows {
			if m, ok := row.(map[string]any); ok {
				snap.Transactions = append(snap.Transactions, Transaction(m))
			}
		}
	}

	if rows, ok := f["products"].([]any); ok {
		for _, row := range rows {
			if m, ok := row.(map[string]any); ok {
				snap.Products = append(snap.Products, Product(m))
			}
		}
	}

	if rows, ok := f["profiles"].([]any); ok {
		for _, row := range rows {
			if m, ok := row.(map[string]any); ok {
				snap.Profiles = append(snap.Profiles, Profile(m))
			}
		}
	}
	if len(snap.Profiles) == 0 {
		if m, ok := f["profile"].(map[string]any); ok {
			snap.Profiles = append(snap.Profiles, Profile(m))
		}
	}

	if len(snap.Profiles) > 0 {
		snap.Profile = snap.Profiles[0]
	} else {
		snap.Profile = Profile(map[string]any{})
	}

	return snap
}
