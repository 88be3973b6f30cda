package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"svw.info/any4/internal/domain"
)

// DefaultPoolFile is the well-known name of the pool file inside the data dir.
const DefaultPoolFile = "difficulty_pools.json"

// ErrMalformed wraps decode failures of persisted pool content.
var ErrMalformed = errors.New("malformed pool data")

// FS stores the pool map as a single JSON file.
type FS struct {
	dir  string
	name string
}

func NewFS(dir string) *FS { return &FS{dir: dir, name: DefaultPoolFile} }

// NewFSFile stores the pool map under a custom file name.
func NewFSFile(dir, name string) *FS { return &FS{dir: dir, name: name} }

// Path is the full path of the pool file.
func (s *FS) Path() string { return filepath.Join(s.dir, s.name) }

// Prepare ensures the data directory exists.
func (s *FS) Prepare(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", s.dir, err)
	}
	return nil
}

// Exists reports whether the pool file is present. Content is not inspected.
func (s *FS) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(s.Path())
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Save writes the pool map to a temp file and renames it into place so
// readers never observe a half-written file.
func (s *FS) Save(ctx context.Context, m domain.PoolMap) error {
	if m == nil {
		return errors.New("invalid pool map: nil")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(s.dir, s.name+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, s.Path())
}

func (s *FS) Load(ctx context.Context) (domain.PoolMap, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, err
	}
	var out domain.PoolMap
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, s.Path(), err)
	}
	if out == nil {
		return nil, fmt.Errorf("%w: %s: not an object", ErrMalformed, s.Path())
	}
	out.Normalize()
	return out, nil
}
