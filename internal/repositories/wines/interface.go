package wines

import (
	"context"

	"github.com/dmitrijs2005/winecellar/internal/models"
)

// Repository describes persistence operations for wine records.
type Repository interface {
	// Save inserts the record or overwrites the stored row with the same id
	// (last write wins). A record with MarkedForDeletion set is deleted instead.
	Save(ctx context.Context, w *models.Wine) error

	// FetchAll returns the records newest first. Archived records are
	// included only when includeArchived is true. Rows that fail to decode
	// are skipped.
	FetchAll(ctx context.Context, includeArchived bool) ([]models.Wine, error)

	// GetByID returns common.ErrorNotFound when no decodable row exists.
	GetByID(ctx context.Context, id string) (*models.Wine, error)

	// Delete removes the row. Unknown ids are not an error.
	Delete(ctx context.Context, id string) error

	// ToggleArchived flips the archive flag. Unknown ids are a no-op.
	ToggleArchived(ctx context.Context, id string) error
}
