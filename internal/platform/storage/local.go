package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/DustinOlsen/GameDevAssetCatalogue/internal/common"
)

// LocalStore keeps uploaded files in a flat directory on local disk.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewLocalStore: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, originalName string, r io.Reader) (string, error) {
	name := ObjectName(originalName)
	path := filepath.Join(s.dir, name)

	// O_EXCL: the generated name must not already exist.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage.LocalStore.Save: %v: %w", err, common.ErrStorage)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage.LocalStore.Save: %v: %w", err, common.ErrStorage)
	}
	return name, nil
}

func (s *LocalStore) Open(_ context.Context, storedName string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(storedName)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("storage.LocalStore.Open: %v: %w", err, common.ErrStorage)
	}
	return f, nil
}

func (s *LocalStore) Remove(_ context.Context, storedName string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(storedName)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return common.ErrNotFound
		}
		return fmt.Errorf("storage.LocalStore.Remove: %v: %w", err, common.ErrStorage)
	}
	return nil
}
