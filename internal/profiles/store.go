// Package profiles persists named connection profiles (service URL plus API
// key) in a single JSON file under the user's home directory.
//
// The store is loaded fresh on every invocation and written at most once,
// by login. There is no cross-process locking: two concurrent logins race
// and the last writer wins.
package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	dserrors "github.com/systmms/devkit/internal/errors"
)

// Profile is one named set of connection credentials.
type Profile struct {
	Name    string `json:"name"`
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
}

// Store is the ordered collection of profiles persisted as one file.
// Names are unique.
type Store struct {
	Profiles []Profile `json:"profiles"`
}

// Upsert replaces the profile with the same name in place, or appends it.
func (s *Store) Upsert(p Profile) {
	for i := range s.Profiles {
		if s.Profiles[i].Name == p.Name {
			s.Profiles[i] = p
			return
		}
	}
	s.Profiles = append(s.Profiles, p)
}

// Get returns the first profile whose name matches exactly.
func (s *Store) Get(name string) (Profile, bool) {
	for _, p := range s.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// Load reads the store at path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{Profiles: []Profile{}}, nil
		}
		return nil, dserrors.StorageError{Op: "read", Path: path, Err: err}
	}

	if err := validate(data); err != nil {
		return nil, dserrors.ConfigError{
			Field:      "profiles",
			Value:      path,
			Message:    "invalid profile file",
			Suggestion: "Fix or remove the file, then run 'devkit login' again",
			Err:        err,
		}
	}

	var store Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, dserrors.ConfigError{
			Field:      "profiles",
			Value:      path,
			Message:    "invalid profile file",
			Suggestion: "Fix or remove the file, then run 'devkit login' again",
			Err:        err,
		}
	}
	if store.Profiles == nil {
		store.Profiles = []Profile{}
	}
	return &store, nil
}

// Save writes the whole store to path, creating parent directories. The
// content goes to a temporary file in the same directory which is then
// renamed over path, so readers never observe a partial file.
func Save(path string, store *Store) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return dserrors.StorageError{Op: "mkdir", Path: dir, Err: err}
	}

	toWrite := store
	if toWrite.Profiles == nil {
		toWrite = &Store{Profiles: []Profile{}}
	}
	data, err := json.MarshalIndent(toWrite, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return dserrors.StorageError{Op: "write", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once the rename succeeded
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return dserrors.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return dserrors.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return dserrors.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return dserrors.StorageError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
