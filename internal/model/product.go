package model

import "strings"

type Product struct {
	ID    int     `json:"id"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Cost  float64 `json:"cost,omitempty"`
	Stock int     `json:"stock" validate:"gte=0"`
	Sold  int     `json:"sold"`
	Image string  `json:"image"` // emoji glyph or http(s) URL
}

// ManageAction discriminates product management writes.
type ManageAction string

const (
	ActionCreate ManageAction = "create"
	ActionUpdate ManageAction = "update"
	ActionDelete ManageAction = "delete"
)

func (a ManageAction) Valid() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete
}

// MatchesName compares product names the way the sheet does: exact string
// match after trimming whitespace.
func (p *Product) MatchesName(name string) bool {
	return strings.TrimSpace(p.Name) == strings.TrimSpace(name)
}
