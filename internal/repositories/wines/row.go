package wines

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/winecellar/internal/logging"
	"github.com/dmitrijs2005/winecellar/internal/models"
)

const (
	vintageUnknownSentinel = 0
	vintageNVSentinel      = -1
)

// wineRow is the flat storage form of models.Wine.
type wineRow struct {
	ID         string
	Name       string
	Color      string
	Style      string
	Sweetness  string
	Producer   string
	Vintage    int64
	Region     string
	Varietal   string
	Notes      string
	ImagePath  string
	DateAdded  time.Time
	IsArchived bool

	// dateErr is set by scanners that parse date_added themselves.
	dateErr error
}

// encodeSweetness joins the raw values with "," in declaration order.
func encodeSweetness(s models.SweetnessSet) string {
	parts := make([]string, 0, s.Len())
	for _, v := range s.Sorted() {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ",")
}

// decodeSweetness is the inverse of encodeSweetness. Unknown tokens are dropped.
func decodeSweetness(raw string) models.SweetnessSet {
	set := models.NewSweetnessSet()
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if v := models.Sweetness(part); v.Valid() {
			set.Add(v)
		}
	}
	return set
}

func encodeVintage(v models.Vintage) int64 {
	if v.IsNonVintage() {
		return vintageNVSentinel
	}
	if y, ok := v.Year(); ok {
		return int64(y)
	}
	return vintageUnknownSentinel
}

// decodeVintage maps 0 and unexpected negatives to the unknown vintage.
func decodeVintage(n int64) models.Vintage {
	switch {
	case n == vintageNVSentinel:
		return models.NonVintageMarker()
	case n > 0:
		v, err := models.VintageYear(int(n))
		if err != nil {
			return models.NoVintage()
		}
		return v
	default:
		return models.NoVintage()
	}
}

func toRow(w *models.Wine) wineRow {
	return wineRow{
		ID:         w.ID,
		Name:       strings.TrimSpace(w.Name),
		Color:      string(w.Color),
		Style:      string(w.Style),
		Sweetness:  encodeSweetness(w.Sweetness),
		Producer:   w.Producer,
		Vintage:    encodeVintage(w.Vintage),
		Region:     w.Region,
		Varietal:   w.Varietal,
		Notes:      w.Notes,
		ImagePath:  w.ImageRef,
		DateAdded:  w.DateAdded.UTC(),
		IsArchived: w.IsArchived,
	}
}

func (r wineRow) toWine() (models.Wine, error) {
	if r.dateErr != nil {
		return models.Wine{}, fmt.Errorf("%w: row %s has bad date_added: %v", models.ErrInvalidWine, r.ID, r.dateErr)
	}
	if strings.TrimSpace(r.ID) == "" {
		return models.Wine{}, fmt.Errorf("%w: empty id", models.ErrInvalidWine)
	}
	if strings.TrimSpace(r.Name) == "" {
		return models.Wine{}, fmt.Errorf("%w: row %s has empty name", models.ErrInvalidWine, r.ID)
	}
	color := models.Color(r.Color)
	if !color.Valid() {
		return models.Wine{}, fmt.Errorf("%w: row %s has unknown color %q", models.ErrInvalidWine, r.ID, r.Color)
	}
	style := models.Style(r.Style)
	if !style.Valid() {
		return models.Wine{}, fmt.Errorf("%w: row %s has unknown style %q", models.ErrInvalidWine, r.ID, r.Style)
	}

	return models.Wine{
		ID:         r.ID,
		Name:       r.Name,
		Color:      color,
		Style:      style,
		Sweetness:  decodeSweetness(r.Sweetness),
		Producer:   r.Producer,
		Vintage:    decodeVintage(r.Vintage),
		Region:     r.Region,
		Varietal:   r.Varietal,
		Notes:      r.Notes,
		ImageRef:   r.ImagePath,
		DateAdded:  r.DateAdded.UTC(),
		IsArchived: r.IsArchived,
	}, nil
}

// collect drains rows through scan, skipping rows that do not decode.
// Scan failures abort; decode failures are logged and dropped.
func collect(ctx context.Context, rows *sql.Rows, scan func(*sql.Rows) (wineRow, error), log logging.Logger) ([]models.Wine, error) {
	defer rows.Close()

	result := []models.Wine{}
	for rows.Next() {
		row, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wine row: %w", err)
		}
		w, err := row.toWine()
		if err != nil {
			log.Warn(ctx, "skipping undecodable wine row", "id", row.ID, "error", err)
			continue
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wine rows: %w", err)
	}
	return result, nil
}
