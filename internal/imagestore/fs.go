package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/winecellar/internal/filex"
	"github.com/dmitrijs2005/winecellar/internal/imaging"
)

// FSStore keeps images as files in <dataDir>/wine_images.
type FSStore struct {
	dir string
}

// NewFSStore creates the image directory under dataDir if needed.
func NewFSStore(dataDir string) (*FSStore, error) {
	dir, err := filex.EnsureSubdir(dataDir, Namespace)
	if err != nil {
		return nil, fmt.Errorf("image dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

func (s *FSStore) Dir() string { return s.dir }

func (s *FSStore) Save(_ context.Context, data []byte, nameHint string) (string, error) {
	jpg, err := imaging.EncodeJPEG(data)
	if err != nil {
		return "", err
	}
	ref := NewReference(nameHint)
	if err := filex.WriteFileAtomic(filepath.Join(s.dir, ref), jpg, 0o640); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return ref, nil
}

func (s *FSStore) Load(_ context.Context, ref string) ([]byte, error) {
	if err := validateRef(ref); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, ref))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", ref, err)
	}
	return data, nil
}

func (s *FSStore) Delete(_ context.Context, ref string) error {
	if err := validateRef(ref); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, ref))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	if err != nil {
		return fmt.Errorf("delete image %s: %w", ref, err)
	}
	return nil
}
