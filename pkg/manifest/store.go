package manifest

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/agentstation/agentsync/pkg/constants"
	"github.com/agentstation/agentsync/pkg/errors"
)

// Store loads and saves one manifest file.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore returns a store for the manifest at path.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the manifest file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the manifest file is present.
func (s *Store) Exists() (bool, error) {
	ok, err := afero.Exists(s.fs, s.path)
	if err != nil {
		return false, errors.WrapIO("stat", s.path, err)
	}
	return ok, nil
}

// Load reads the manifest. A missing file is a NotFoundError.
func (s *Store) Load() (*Manifest, error) {
	ok, err := s.Exists()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewNotFoundError("manifest", s.path)
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, errors.WrapIO("read", s.path, err)
	}
	m, err := Parse(data)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.File = s.path
		}
		return nil, err
	}
	return m, nil
}

// LoadOrNew reads the manifest, returning an empty one when the file is
// missing.
func (s *Store) LoadOrNew() (*Manifest, error) {
	m, err := s.Load()
	if errors.IsNotFound(err) {
		return New(), nil
	}
	return m, err
}

// Save writes the manifest, replacing the file.
func (s *Store) Save(m *Manifest) error {
	data, err := m.Encode()
	if err != nil {
		return errors.WrapParse("json", s.path, err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("mkdir", dir, err)
		}
	}
	if err := afero.WriteFile(s.fs, s.path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", s.path, err)
	}
	return nil
}
