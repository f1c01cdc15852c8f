// Package prefs persists the user's test preferences.
package prefs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/jask/quickstart/internal/sdk"
)

const prefsFile = "preferences.json"

// Preferences are the toggles shown on the start screen. Both default to true.
type Preferences struct {
	ShowInstructions bool `json:"show_instructions"`
	AllowToSave      bool `json:"allow_to_save"`
}

// Defaults returns the preferences used before anything was saved.
func Defaults() Preferences {
	return Preferences{ShowInstructions: true, AllowToSave: true}
}

// TestConfiguration returns the configuration a new test starts with.
func (p Preferences) TestConfiguration() sdk.TestConfiguration {
	return sdk.TestConfiguration{ShowInstructions: p.ShowInstructions, AllowToSave: p.AllowToSave}
}

// Store reads and writes preferences as JSON in Dir.
type Store struct {
	Dir string
}

// NewStore returns a Store under the user's config directory.
func NewStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &Store{Dir: filepath.Join(dir, "quickstart")}, nil
}

func (s *Store) path() (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, prefsFile), nil
}

// Load returns the saved preferences, or Defaults when none were saved.
// Keys absent from the file keep their default.
func (s *Store) Load() (Preferences, error) {
	p := Defaults()
	path, err := s.path()
	if err != nil {
		return p, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Defaults(), err
	}
	return p, nil
}

// Save writes p atomically.
func (s *Store) Save(p Preferences) error {
	path, err := s.path()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
