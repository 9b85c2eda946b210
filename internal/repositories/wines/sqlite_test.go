package wines

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/winecellar/internal/common"
	"github.com/dmitrijs2005/winecellar/internal/migrations"
	"github.com/dmitrijs2005/winecellar/internal/models"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	fsys, err := migrations.ForDialect("sqlite")
	require.NoError(t, err)
	goose.SetBaseFS(fsys)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "."))
	return db
}

func newWine(t *testing.T, name string, added time.Time) *models.Wine {
	t.Helper()
	w := models.NewWine(name, models.ColorRed, models.StyleStill)
	w.DateAdded = added
	return w
}

func TestSQLite_SaveThenFetch_Equal(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	ctx := context.Background()

	w := newWine(t, "Barolo", time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.UTC))
	w.Sweetness = models.NewSweetnessSet(models.SweetnessDry, models.SweetnessOffDry)
	w.Producer = "Vietti"
	w.Vintage = models.NonVintageMarker()
	w.ImageRef = "Barolo_x.jpg"

	require.NoError(t, r.Save(ctx, w))

	all, err := r.FetchAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, w.Clone(), all[0])

	got, err := r.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w.Clone(), *got)
}

func TestSQLite_Save_UpdatesInPlaceKeepingDateAdded(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	ctx := context.Background()

	added := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	w := newWine(t, "Chablis", added)
	require.NoError(t, r.Save(ctx, w))

	edited := w.Clone()
	edited.Name = "Chablis Premier Cru"
	edited.Color = models.ColorWhite
	edited.DateAdded = added.Add(48 * time.Hour)
	require.NoError(t, r.Save(ctx, &edited))

	all, err := r.FetchAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Chablis Premier Cru", all[0].Name)
	assert.Equal(t, models.ColorWhite, all[0].Color)
	assert.Equal(t, added, all[0].DateAdded)
}

func TestSQLite_Save_RejectsInvalid(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	w := newWine(t, "  ", time.Now().UTC())

	err := r.Save(context.Background(), w)
	require.ErrorIs(t, err, models.ErrInvalidWine)
}

func TestSQLite_Save_MarkedForDeletionDeletes(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	ctx := context.Background()

	w := newWine(t, "Port", time.Now().UTC())
	require.NoError(t, r.Save(ctx, w))

	w.MarkedForDeletion = true
	require.NoError(t, r.Save(ctx, w))

	all, err := r.FetchAll(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = r.GetByID(ctx, w.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_Delete_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	ctx := context.Background()

	w := newWine(t, "Rioja", time.Now().UTC())
	require.NoError(t, r.Save(ctx, w))

	require.NoError(t, r.Delete(ctx, w.ID))
	require.NoError(t, r.Delete(ctx, w.ID))
	require.NoError(t, r.Delete(ctx, "never-existed"))
}

func TestSQLite_ArchivedVisibility(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	ctx := context.Background()

	w := newWine(t, "Sauternes", time.Now().UTC())
	require.NoError(t, r.Save(ctx, w))
	require.NoError(t, r.ToggleArchived(ctx, w.ID))

	active, err := r.FetchAll(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := r.FetchAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsArchived)

	require.NoError(t, r.ToggleArchived(ctx, w.ID))
	active, err = r.FetchAll(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, r.ToggleArchived(ctx, "unknown"))
}

func TestSQLite_FetchAll_NewestFirst(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), nil)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"first", "second", "third"} {
		require.NoError(t, r.Save(ctx, newWine(t, name, base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := r.FetchAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i-1].DateAdded.Before(all[i].DateAdded))
	}
	assert.Equal(t, "third", all[0].Name)
}

func TestSQLite_FetchAll_SkipsUndecodableRows(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db, nil)
	ctx := context.Background()

	require.NoError(t, r.Save(ctx, newWine(t, "Good", time.Now().UTC())))
	_, err := db.Exec(`INSERT INTO wines (id, name, color, style, date_added) VALUES ('bad', 'Bad', 'Purple', 'Still', '2024-01-01T00:00:00.000000000Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO wines (id, name, color, style, date_added) VALUES ('bad-date', 'Bad', 'Red', 'Still', 'yesterday')`)
	require.NoError(t, err)

	all, err := r.FetchAll(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Good", all[0].Name)

	_, err = r.GetByID(ctx, "bad")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_FetchAll_QueryErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM wines WHERE is_archived = 0 ORDER BY date_added DESC, id DESC`)).
		WillReturnError(errors.New("disk I/O error"))

	_, err = NewSQLiteRepository(db, nil).FetchAll(context.Background(), false)
	require.ErrorContains(t, err, "failed to select wines")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite_Save_RollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	w := newWine(t, "Fino", time.Now().UTC())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT 1 FROM wines WHERE id = \?`).WithArgs(w.ID).WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec(`INSERT INTO wines`).WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err = NewSQLiteRepository(db, nil).Save(context.Background(), w)
	require.ErrorContains(t, err, "failed to insert wine")
	require.NoError(t, mock.ExpectationsWereMet())
}
