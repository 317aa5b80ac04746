// Package credentials stores the token used to authenticate against the
// remote service. The password itself is never written to disk.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// ErrNotFound is returned by Load when no credentials were stored.
var ErrNotFound = errors.New("no stored credentials")

// Credentials identify a user on a Subsonic-compatible server.
type Credentials struct {
	Server   string `json:"server"`
	Username string `json:"username"`
	// Token is md5(password + Salt), as the Subsonic API expects.
	Token string `json:"token"`
	Salt  string `json:"salt"`
}

// Valid reports whether every field needed to authenticate is set.
func (c Credentials) Valid() bool {
	return c.Server != "" && c.Username != "" && c.Token != "" && c.Salt != ""
}

// Store persists credentials as JSON in a single file.
type Store struct {
	path string
}

// DefaultPath returns the credential file location in the user cache dir.
func DefaultPath() (string, error) {
	return xdg.CacheFile(filepath.Join("ripple", "credentials.json"))
}

// NewStore creates a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads stored credentials.
func (s *Store) Load() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Credentials{}, ErrNotFound
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}
	if !c.Valid() {
		return Credentials{}, ErrNotFound
	}
	return c, nil
}

// Save writes c, readable by the owner only.
func (s *Store) Save(c Credentials) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Remove deletes stored credentials. Removing absent credentials is not an error.
func (s *Store) Remove() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
