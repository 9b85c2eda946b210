// Package models defines the wine record and its attribute types.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidWine is returned (wrapped) by Validate when a record breaks an invariant.
var ErrInvalidWine = errors.New("invalid wine")

// Now is a test seam for the creation clock.
var Now = func() time.Time { return time.Now().UTC() }

// Wine is a single cataloged bottle.
type Wine struct {
	// ID uniquely identifies the record; it never changes after creation.
	ID string

	Name  string
	Color Color
	Style Style

	// Sweetness holds zero or more sweetness levels (set semantics).
	Sweetness SweetnessSet

	Producer string
	Vintage  Vintage
	Region   string
	Varietal string
	Notes    string

	// ImageRef is an opaque reference resolvable by an image store.
	ImageRef string

	// DateAdded is the creation time in UTC; it never changes after creation.
	DateAdded time.Time

	// IsArchived hides the record from default listings and pairing inventories.
	IsArchived bool

	// MarkedForDeletion is a transient delete intent. It is never stored:
	// repositories turn a save of a marked record into a delete.
	MarkedForDeletion bool
}

// NewWine returns a record with a fresh id and DateAdded set to now.
func NewWine(name string, color Color, style Style) *Wine {
	return &Wine{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Color:     color,
		Style:     style,
		Sweetness: NewSweetnessSet(),
		DateAdded: Now(),
	}
}

// Validate checks the record invariants.
func (w *Wine) Validate() error {
	switch {
	case w == nil:
		return fmt.Errorf("%w: nil record", ErrInvalidWine)
	case strings.TrimSpace(w.ID) == "":
		return fmt.Errorf("%w: empty id", ErrInvalidWine)
	case strings.TrimSpace(w.Name) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidWine)
	case !w.Color.Valid():
		return fmt.Errorf("%w: unknown color %q", ErrInvalidWine, string(w.Color))
	case !w.Style.Valid():
		return fmt.Errorf("%w: unknown style %q", ErrInvalidWine, string(w.Style))
	}
	for s := range w.Sweetness {
		if !s.Valid() {
			return fmt.Errorf("%w: unknown sweetness %q", ErrInvalidWine, string(s))
		}
	}
	if y, ok := w.Vintage.Year(); ok && y <= 0 {
		return fmt.Errorf("%w: vintage year %d", ErrInvalidWine, y)
	}
	return nil
}

// Clone returns a deep copy of w.
func (w Wine) Clone() Wine {
	w.Sweetness = w.Sweetness.Clone()
	return w
}

// Title is a short human label, e.g. "Barolo (Vietti, 2019)".
func (w Wine) Title() string {
	var extra []string
	if w.Producer != "" {
		extra = append(extra, w.Producer)
	}
	if w.Vintage.IsSet() {
		extra = append(extra, w.Vintage.String())
	}
	if len(extra) == 0 {
		return w.Name
	}
	return fmt.Sprintf("%s (%s)", w.Name, strings.Join(extra, ", "))
}
