package credsync

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists a single credential. Save must complete before it returns;
// implementations must not defer or batch writes, because the persisted
// credential has to reflect the in-memory authentication state at the
// moment of any change.
type Store interface {
	// Load returns the persisted credential, or ErrNoCredential.
	Load() (Credential, error)

	// Save overwrites the persisted credential.
	Save(cred Credential) error

	// Clear removes the persisted credential.
	Clear() error
}

// FileStore persists the credential as a JSON file with owner-only
// permissions. This is the CLI / desktop analog of the browser cookie.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed credential store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the credential file.
func (s *FileStore) Load() (Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Credential{}, ErrNoCredential
		}
		return Credential{}, err
	}
	return DecodeCredential(data)
}

// Save writes the credential file, creating parent directories as needed.
func (s *FileStore) Save(cred Credential) error {
	data, err := cred.Encode()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the credential file. A missing file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
