package artifacts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FSStore keeps audio artifacts as files under a single directory.
type FSStore struct {
	dir string
}

func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) Save(_ context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}
	return nil
}

func (s *FSStore) Open(_ context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read audio file: %w", err)
	}
	return data, nil
}

func (s *FSStore) Remove(_ context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove audio file: %w", err)
	}
	return nil
}
