package wines

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/winecellar/internal/common"
	"github.com/dmitrijs2005/winecellar/internal/models"
)

var pgColumns = []string{"id", "name", "color", "style", "sweetness", "producer", "vintage",
	"region", "varietal", "notes", "image_path", "date_added", "is_archived"}

func newPostgresWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db, nil), mock, db
}

func TestPostgres_Save_Upserts(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	added := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	w := models.NewWine("Cava", models.ColorWhite, models.StyleSparkling)
	w.DateAdded = added
	w.Sweetness.Add(models.SweetnessOffDry)
	w.Vintage = models.NonVintageMarker()

	mock.ExpectExec(`INSERT INTO wines .* ON CONFLICT \(id\)\s+DO UPDATE SET`).
		WithArgs(w.ID, "Cava", "White", "Sparkling", "Off-Dry", "", int64(-1), "", "", "", "", added, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), w))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Save_MarkedForDeletionDeletes(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM wines WHERE id = \$1`).
		WithArgs("w-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Save(context.Background(), &models.Wine{ID: "w-1", MarkedForDeletion: true})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Save_ExecErrorWrapped(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO wines`).WillReturnError(errors.New("db is down"))

	err := repo.Save(context.Background(), models.NewWine("Tokaji", models.ColorWhite, models.StyleStill))
	require.ErrorContains(t, err, "db error: db is down")
}

func TestPostgres_FetchAll_DropsBadRows(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	newer := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)
	rows := sqlmock.NewRows(pgColumns).
		AddRow("a", "Barolo", "Red", "Still", "Dry", "Vietti", int64(2016), "Piedmont", "Nebbiolo", "", "", newer, false).
		AddRow("b", "Mystery", "Purple", "Still", "", "", int64(0), "", "", "", "", newer, false).
		AddRow("c", "Port", "Red", "Fortified", "Sweet,Dessert-Sweet", "", int64(0), "", "", "", "", older, false)

	mock.ExpectQuery(`SELECT .* FROM wines WHERE is_archived = FALSE ORDER BY date_added DESC, id DESC`).
		WillReturnRows(rows)

	got, err := repo.FetchAll(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	y, ok := got[0].Vintage.Year()
	assert.True(t, ok)
	assert.Equal(t, 2016, y)
	assert.False(t, got[1].Vintage.IsSet())
	assert.True(t, got[1].Sweetness.Equal(models.NewSweetnessSet(models.SweetnessSweet, models.SweetnessDessertSweet)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_FetchAll_IncludeArchivedHasNoFilter(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM wines ORDER BY date_added DESC, id DESC`).
		WillReturnRows(sqlmock.NewRows(pgColumns))

	got, err := repo.FetchAll(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetByID_NotFound(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM wines WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(pgColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgres_ToggleArchived(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE wines SET is_archived = NOT is_archived WHERE id = \$1`).
		WithArgs("w-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ToggleArchived(context.Background(), "w-1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteErrorWrapped(t *testing.T) {
	repo, mock, db := newPostgresWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM wines`).WillReturnError(errors.New("conn reset"))

	err := repo.Delete(context.Background(), "w-1")
	require.ErrorContains(t, err, "failed to delete wine")
}
