package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Storage keys. The names match the keys existing storefront deployments
// persist, so a session written by an older client remains readable.
const (
	// KeyToken holds the opaque bearer credential.
	KeyToken = "authToken"

	// KeyExpiration holds the absolute expiry time as epoch milliseconds,
	// encoded as a decimal string.
	KeyExpiration = "tokenExpiration"

	// KeyAccountType holds the account classification (e.g. "user").
	KeyAccountType = "type"
)

// Store is durable key-value storage for session state. Implementations
// make no transactional guarantee across keys; callers sequence writes.
type Store interface {
	// Get returns the value for key, or false if the key is absent.
	Get(key string) (string, bool)

	// Set writes key to value, overwriting any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}

// FileStore persists session state as a JSON object on the local
// filesystem, surviving process restarts.
type FileStore struct {
	baseDir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed session store.
// If baseDir is empty, uses ~/.rentkit/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".rentkit")
	}

	// Session files hold credentials, keep the directory private
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	store := &FileStore{baseDir: baseDir}

	if err := store.ensureFile(); err != nil {
		return nil, err
	}

	log.Debug().Str("baseDir", baseDir).Msg("session store initialized")

	return store, nil
}

// Get returns the stored value for key. A store that cannot be read is
// treated as empty rather than failing: the session layer degrades to
// logged-out on any missing or invalid data.
func (s *FileStore) Get(key string) (string, bool) {
	values, err := s.load()
	if err != nil {
		log.Warn().Err(err).Msg("failed to read session file")
		return "", false
	}

	value, ok := values[key]
	return value, ok
}

// Set writes key to value, overwriting any previous value.
func (s *FileStore) Set(key, value string) error {
	values, err := s.load()
	if err != nil {
		// Start over with a fresh map rather than refusing to write
		values = make(map[string]string)
	}

	values[key] = value

	return s.save(values)
}

// Remove deletes key from the store.
func (s *FileStore) Remove(key string) error {
	values, err := s.load()
	if err != nil {
		return nil
	}

	if _, ok := values[key]; !ok {
		return nil
	}

	delete(values, key)

	return s.save(values)
}

func (s *FileStore) path() string {
	return filepath.Join(s.baseDir, "session.json")
}

// ensureFile creates an empty session file if one doesn't exist.
func (s *FileStore) ensureFile() error {
	if _, err := os.Stat(s.path()); err == nil {
		return nil
	}

	return s.save(make(map[string]string))
}

// load reads the session file.
func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}

	if values == nil {
		values = make(map[string]string)
	}

	return values, nil
}

// save writes the session file atomically.
func (s *FileStore) save(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Write to temp file first
	path := s.path()
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save session file: %w", err)
	}

	return nil
}
