// Package imagestore keeps label photos outside the database. Records hold
// only an opaque reference returned by Save.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Namespace is the directory or key prefix all images live under.
const Namespace = "wine_images"

var (
	ErrNotFound         = errors.New("image not found")
	ErrInvalidReference = errors.New("invalid image reference")
)

// Store persists image blobs.
type Store interface {
	// Save normalises data to JPEG and returns a new reference.
	Save(ctx context.Context, data []byte, nameHint string) (string, error)

	// Load returns (nil, nil) when ref does not resolve.
	Load(ctx context.Context, ref string) ([]byte, error)

	// Delete returns ErrNotFound when ref does not resolve.
	Delete(ctx context.Context, ref string) error
}

// NewReference builds "<hint>_<uuid>.jpg" with the hint reduced to a safe
// file name.
func NewReference(nameHint string) string {
	return fmt.Sprintf("%s_%s.jpg", sanitize(nameHint), uuid.NewString())
}

func sanitize(hint string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(hint) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '_':
			b.WriteRune('_')
		}
		if b.Len() >= 64 {
			break
		}
	}
	if b.Len() == 0 {
		return "wine"
	}
	return b.String()
}

// validateRef rejects anything that is not a bare file name.
func validateRef(ref string) error {
	if ref == "" || ref == "." || ref == ".." ||
		strings.ContainsAny(ref, `/\`) || strings.Contains(ref, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return nil
}
