package model

// Snapshot is the full dashboard dataset from one successful fetch. It is
// replaced wholesale on every refresh; nothing merges incrementally.
type Snapshot struct {
	Transactions []Transaction `json:"transactions"`
	Products     []Product     `json:"products"`
	Profile      Profile       `json:"profile"`
	Profiles     []Profile     `json:"profiles"`
}

// SnapshotPatch carries a partial snapshot for a local, non-persistent
// merge. Nil fields are left untouched.
type SnapshotPatch struct {
	Transactions *[]Transaction
	Products     *[]Product
	Profile      *Profile
	Profiles     *[]Profile
}

// FindProductByName returns the catalog entry whose name exactly matches
// the (trimmed) transaction product string, or nil.
func (s *Snapshot) FindProductByName(name string) *Product {
	for i := range s.Products {
		if s.Products[i].MatchesName(name) {
			return &s.Products[i]
		}
	}
	return nil
}
