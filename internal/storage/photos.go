package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PhotoStore keeps uploaded book photos on local disk under a single
// directory served as static files.
type PhotoStore struct {
	dir      string
	basePath string
}

func NewPhotoStore(dir string) (*PhotoStore, error) {
	sub := filepath.Join(dir, "books")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create upload directory: %w", err)
	}
	return &PhotoStore{dir: sub, basePath: "/uploads/books/"}, nil
}

// NewName returns a fresh collision-free filename preserving the
// original extension.
func (s *PhotoStore) NewName(original string) string {
	return uuid.New().String() + filepath.Ext(original)
}

func (s *PhotoStore) Path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *PhotoStore) URL(name string) string {
	return s.basePath + name
}

// Remove deletes the files behind the given URLs. It keeps going past
// individual failures and reports them joined, so callers can treat the
// whole operation as best-effort.
func (s *PhotoStore) Remove(urls []string) error {
	var errs []error
	for _, u := range urls {
		name := strings.TrimPrefix(u, s.basePath)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
