package model

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Profile is an account row from the profile sheet. The password column is
// only used for the login gate and never serialized back out.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	PhotoURL string `json:"photourl"` // emoji glyph or http(s) URL
	Password string `json:"-"`
}

// CheckPassword verifies a login attempt against the sheet value. Most
// sheets hold the password in plain text, but a bcrypt hash is accepted too
// so operators can avoid storing plaintext.
func (p *Profile) CheckPassword(password string) bool {
	stored := strings.TrimSpace(p.Password)
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return stored == password
}

// MatchesEmail reports whether a login identifier targets this profile.
// "admin" is accepted as a shorthand for any profile, matching the original
// single-tenant setup flow.
func (p *Profile) MatchesEmail(email string) bool {
	in := strings.ToLower(strings.TrimSpace(email))
	return in == "admin" || in == strings.ToLower(strings.TrimSpace(p.Email))
}
