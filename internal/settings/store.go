// Package settings persists the connection settings the setup wizard
// writes: a single JSON file holding the spreadsheet web-app URL. The URL
// is re-read on every call so a runtime change through the wizard takes
// effect without a restart.
package settings

import (
	"encoding/json"
	"errors"
	"os"
	"regexp"
	"strings"
	"sync"
)

var ErrInvalidScriptURL = errors.New("invalid Apps Script web app URL")

// Deployed Apps Script web apps always look like this; anything else is a
// copy/paste mistake caught before the first network call.
var scriptURLPattern = regexp.MustCompile(`^https://script\.google\.com/macros/s/[\w-]+/exec(\?.*)?$`)

// ValidScriptURL reports whether url structurally matches a deployed
// Apps Script web app endpoint.
func ValidScriptURL(url string) bool {
	return scriptURLPattern.MatchString(url)
}

type fileData struct {
	ScriptURL string `json:"script_url"`
}

// Store is the runtime view of the settings file.
type Store struct {
	mu       sync.RWMutex
	path     string
	data     fileData
	fallback string // env-provided default, used until the wizard saves
}

// Load reads the settings file at path. A missing file is not an error:
// the store starts unconfigured and fallback (usually the
// GOOGLE_SCRIPT_URL env var) applies until the wizard saves a URL.
func Load(path, fallback string) (*Store, error) {
	s := &Store{path: path, fallback: strings.TrimSpace(fallback)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, err
	}
	return s, nil
}

// ScriptURL resolves the current endpoint URL: the saved value wins, the
// env fallback applies otherwise, and "" means setup has not run yet.
func (s *Store) ScriptURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.ScriptURL != "" {
		return s.data.ScriptURL
	}
	return s.fallback
}

// Configured reports whether any endpoint URL is available.
func (s *Store) Configured() bool {
	return s.ScriptURL() != ""
}

// SetScriptURL validates and persists a new endpoint URL.
func (s *Store) SetScriptURL(url string) error {
	url = strings.TrimSpace(url)
	if !ValidScriptURL(url) {
		return ErrInvalidScriptURL
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.data.ScriptURL
	s.data.ScriptURL = url

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		s.data.ScriptURL = prev
		return err
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		s.data.ScriptURL = prev
		return err
	}
	return nil
}
