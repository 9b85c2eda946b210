package wines

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/winecellar/internal/common"
	"github.com/dmitrijs2005/winecellar/internal/dbx"
	"github.com/dmitrijs2005/winecellar/internal/logging"
	"github.com/dmitrijs2005/winecellar/internal/models"
)

const postgresColumns = `id, name, color, style, sweetness, producer, vintage, region, varietal, notes, image_path, date_added, is_archived`

// PostgresRepository implements Repository over a dbx.DBTX opened with the
// pgx stdlib driver.
type PostgresRepository struct {
	db  dbx.DBTX
	log logging.Logger
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX, log logging.Logger) *PostgresRepository {
	if log == nil {
		log = logging.Nop()
	}
	return &PostgresRepository{db: db, log: log}
}

// Save upserts w in a single statement. On conflict every mutable column is
// overwritten; id and date_added keep their stored values.
func (r *PostgresRepository) Save(ctx context.Context, w *models.Wine) error {
	if w != nil && w.MarkedForDeletion {
		return r.Delete(ctx, w.ID)
	}
	if err := w.Validate(); err != nil {
		return err
	}
	row := toRow(w)

	query := `
		INSERT INTO wines (` + postgresColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			color = EXCLUDED.color,
			style = EXCLUDED.style,
			sweetness = EXCLUDED.sweetness,
			producer = EXCLUDED.producer,
			vintage = EXCLUDED.vintage,
			region = EXCLUDED.region,
			varietal = EXCLUDED.varietal,
			notes = EXCLUDED.notes,
			image_path = EXCLUDED.image_path,
			is_archived = EXCLUDED.is_archived`
	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.Name, row.Color, row.Style, row.Sweetness, row.Producer, row.Vintage,
		row.Region, row.Varietal, row.Notes, row.ImagePath, row.DateAdded, row.IsArchived)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FetchAll(ctx context.Context, includeArchived bool) ([]models.Wine, error) {
	query := `SELECT ` + postgresColumns + ` FROM wines`
	if !includeArchived {
		query += ` WHERE is_archived = FALSE`
	}
	query += ` ORDER BY date_added DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select wines: %w", err)
	}
	return collect(ctx, rows, scanPostgres, r.log)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Wine, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+postgresColumns+` FROM wines WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to select wine %s: %w", id, err)
	}
	found, err := collect(ctx, rows, scanPostgres, r.log)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return &found[0], nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wines WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete wine: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ToggleArchived(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE wines SET is_archived = NOT is_archived WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to toggle archive flag: %w", err)
	}
	return nil
}

func scanPostgres(rows *sql.Rows) (wineRow, error) {
	var row wineRow
	err := rows.Scan(&row.ID, &row.Name, &row.Color, &row.Style, &row.Sweetness, &row.Producer,
		&row.Vintage, &row.Region, &row.Varietal, &row.Notes, &row.ImagePath, &row.DateAdded, &row.IsArchived)
	return row, err
}
