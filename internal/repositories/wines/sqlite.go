package wines

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/winecellar/internal/common"
	"github.com/dmitrijs2005/winecellar/internal/dbx"
	"github.com/dmitrijs2005/winecellar/internal/logging"
	"github.com/dmitrijs2005/winecellar/internal/models"
)

// sqliteTimeLayout sorts lexically in chronological order for UTC values.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

const sqliteColumns = `id, name, color, style, sweetness, producer, vintage, region, varietal, notes, image_path, date_added, is_archived`

// SQLiteRepository implements Repository on a local SQLite database.
type SQLiteRepository struct {
	db  *sql.DB
	log logging.Logger
}

// NewSQLiteRepository returns a repository bound to db. log may be nil.
func NewSQLiteRepository(db *sql.DB, log logging.Logger) *SQLiteRepository {
	if log == nil {
		log = logging.Nop()
	}
	return &SQLiteRepository{db: db, log: log}
}

// Save upserts w inside a transaction. id and date_added of an existing row
// are never rewritten.
func (r *SQLiteRepository) Save(ctx context.Context, w *models.Wine) error {
	if w != nil && w.MarkedForDeletion {
		return r.Delete(ctx, w.ID)
	}
	if err := w.Validate(); err != nil {
		return err
	}
	row := toRow(w)

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM wines WHERE id = ?`, row.ID).Scan(&exists)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.ExecContext(ctx, `
				INSERT INTO wines (`+sqliteColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				row.ID, row.Name, row.Color, row.Style, row.Sweetness, row.Producer, row.Vintage,
				row.Region, row.Varietal, row.Notes, row.ImagePath,
				row.DateAdded.Format(sqliteTimeLayout), row.IsArchived)
			if err != nil {
				return fmt.Errorf("failed to insert wine: %w", err)
			}
		case err != nil:
			return fmt.Errorf("failed to look up wine %s: %w", row.ID, err)
		default:
			_, err = tx.ExecContext(ctx, `
				UPDATE wines SET name = ?, color = ?, style = ?, sweetness = ?, producer = ?,
					vintage = ?, region = ?, varietal = ?, notes = ?, image_path = ?, is_archived = ?
				WHERE id = ?`,
				row.Name, row.Color, row.Style, row.Sweetness, row.Producer, row.Vintage,
				row.Region, row.Varietal, row.Notes, row.ImagePath, row.IsArchived, row.ID)
			if err != nil {
				return fmt.Errorf("failed to update wine: %w", err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) FetchAll(ctx context.Context, includeArchived bool) ([]models.Wine, error) {
	query := `SELECT ` + sqliteColumns + ` FROM wines`
	if !includeArchived {
		query += ` WHERE is_archived = 0`
	}
	query += ` ORDER BY date_added DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select wines: %w", err)
	}
	return collect(ctx, rows, scanSQLite, r.log)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Wine, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+sqliteColumns+` FROM wines WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to select wine %s: %w", id, err)
	}
	found, err := collect(ctx, rows, scanSQLite, r.log)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return &found[0], nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM wines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wine: %w", err)
	}
	if dbx.RowsAffected(res) == 0 {
		r.log.Debug(ctx, "delete of unknown wine", "id", id)
	}
	return nil
}

func (r *SQLiteRepository) ToggleArchived(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE wines SET is_archived = NOT is_archived WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to toggle archive flag: %w", err)
	}
	return nil
}

func scanSQLite(rows *sql.Rows) (wineRow, error) {
	var (
		row  wineRow
		date string
	)
	err := rows.Scan(&row.ID, &row.Name, &row.Color, &row.Style, &row.Sweetness, &row.Producer,
		&row.Vintage, &row.Region, &row.Varietal, &row.Notes, &row.ImagePath, &date, &row.IsArchived)
	if err != nil {
		return wineRow{}, err
	}
	row.DateAdded, row.dateErr = time.Parse(time.RFC3339Nano, date)
	return row, nil
}
