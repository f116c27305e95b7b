// Package draftstore persists per-role workflow collections as JSON files,
// one file per namespace key. Every save rewrites the whole collection;
// there is no partial update and no cross-key atomicity.
package draftstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var ErrInvalidKey = errors.New("invalid namespace key")

// DeserializationError reports a namespace whose stored JSON no longer parses.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("draft store: malformed data for key %q: %v", e.Key, e.Err)
}

func (e *DeserializationError) Unwrap() error { return e.Err }

type Store struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("draft store: failed to create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Key builds the canonical <role>-<entity>-<identity> namespace key.
func Key(role, entity, identity string) string {
	return fmt.Sprintf("%s-%s-%s", role, entity, identity)
}

// Load decodes the collection stored under key into dest, which must be a
// pointer to a slice. An absent key leaves dest untouched; malformed JSON
// fails with a DeserializationError.
func (s *Store) Load(key string, dest any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("draft store: failed to open %s: %w", key, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(dest); err != nil {
		return &DeserializationError{Key: key, Err: err}
	}
	return nil
}

// Save serializes the collection and fully overwrites any prior value.
func (s *Store) Save(key string, collection any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("draft store: failed to create %s: %w", key, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(collection); err != nil {
		return fmt.Errorf("draft store: failed to encode %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
