package screening

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ShowtimeService/pkg/ptr"
)

var (
	inception = domain.TitleRef{Kind: domain.TitleKindFilm, ID: 1}
	created   = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func inTx(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) context.Context {
	t.Helper()
	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)
	t.Cleanup(func() {
		mock.ExpectRollback()
		assert.NoError(t, tx.Rollback())
	})
	return dbmetrics.WithTx(context.Background(), tx)
}

func screeningRows() *sqlmock.Rows {
	return sqlmock.NewRows(screeningColumns).AddRow(
		int64(5), int64(2), 1, "film", int64(1),
		time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC),
		[]byte(`[[true,false],[false,false]]`),
		int64(30), int64(50), int64(60),
		int64(4),
		created, created,
	)
}

func TestGetByIDForUpdate_LocksOnlyInsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`^SELECT id, venue_id, .*, grid_version, created_at, updated_at FROM screenings WHERE id = \$1$`).
		WithArgs(5).
		WillReturnRows(screeningRows())

	s, err := repo.GetByIDForUpdate(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, inception, s.Title)
	assert.Equal(t, int64(4), s.GridVersion)
	assert.Equal(t, 1, s.Grid.Occupancy())
	assert.Equal(t, domain.Prices{Economy: 30, Central: 50, Premium: 60}, s.Prices)

	ctx := inTx(t, db, mock)
	mock.ExpectQuery(`FROM screenings WHERE id = \$1 FOR UPDATE$`).
		WithArgs(5).
		WillReturnRows(screeningRows())

	_, err = repo.GetByIDForUpdate(ctx, 5)
	require.NoError(t, err)
}

func TestGetByID_Errors(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`FROM screenings WHERE id = \$1$`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows(screeningColumns))

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrScreeningNotFound)

	broken := sqlmock.NewRows(screeningColumns).AddRow(
		int64(5), int64(2), 1, "film", int64(1), created, created,
		[]byte(`[[true],[false,false]]`),
		int64(30), int64(50), int64(60), int64(1), created, created,
	)
	mock.ExpectQuery(`FROM screenings WHERE id = \$1$`).WithArgs(5).WillReturnRows(broken)

	_, err = repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrScanRow)
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)
}

func TestCreate_ReturnsGridVersion(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	s := &domain.Screening{
		VenueID: 2, ScreenNumber: 1, Title: inception,
		StartsAt: time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2024, 3, 10, 13, 0, 0, 0, time.UTC),
		Grid:     domain.NewSeatGrid(1, 2),
		Prices:   domain.Prices{Economy: 30, Central: 50, Premium: 60},
	}

	mock.ExpectQuery(`^INSERT INTO screenings \(venue_id,screen_number,title_kind,title_id,starts_at,ends_at,grid,price_economy,price_central,price_premium\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9,\$10\) RETURNING id, grid_version, created_at, updated_at$`).
		WithArgs(2, 1, "film", 1, s.StartsAt, s.EndsAt, `[[false,false]]`, 30, 50, 60).
		WillReturnRows(sqlmock.NewRows([]string{"id", "grid_version", "created_at", "updated_at"}).AddRow(11, 1, created, created))

	out, err := repo.Create(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, int64(11), out.ID)
	assert.Equal(t, int64(1), out.GridVersion)
	assert.Equal(t, created, out.CreatedAt)
}

func TestExistsTitleInCity(t *testing.T) {
	const base = `^SELECT EXISTS \( SELECT 1 FROM screenings s JOIN venues v ON v\.id = s\.venue_id ` +
		`WHERE s\.title_id = \$1 AND s\.title_kind = \$2 AND v\.city = \$3 AND s\.starts_at >= \$4 AND s\.starts_at < \$5`

	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	tests := []struct {
		name      string
		excludeID *int64
		query     string
		args      []driver.Value
		exists    bool
	}{
		{
			name:   "half-open day range",
			query:  base + ` \)$`,
			args:   []driver.Value{1, "film", "Mumbai", from, to},
			exists: true,
		},
		{
			name:      "skips the excluded screening",
			excludeID: ptr.Ptr(int64(5)),
			query:     base + ` AND s\.id <> \$6 \)$`,
			args:      []driver.Value{1, "film", "Mumbai", from, to, 5},
			exists:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewRepository(db)

			mock.ExpectQuery(tt.query).
				WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.exists))

			got, err := repo.ExistsTitleInCity(context.Background(), "Mumbai", inception, from, to, tt.excludeID)
			require.NoError(t, err)
			assert.Equal(t, tt.exists, got)
		})
	}
}

func TestListIntervalsByScreen_Exclusion(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`^SELECT id, starts_at, ends_at FROM screenings WHERE screen_number = \$1 AND venue_id = \$2 AND id <> \$3 ORDER BY starts_at ASC$`).
		WithArgs(1, 2, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "starts_at", "ends_at"}).
			AddRow(int64(6), created, created.Add(2*time.Hour)))

	intervals, err := repo.ListIntervalsByScreen(context.Background(), 2, 1, ptr.Ptr(int64(5)))
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, int64(6), intervals[0].ScreeningID)
}

func TestListIDsByVenue_LocksInsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)
	ctx := inTx(t, db, mock)

	mock.ExpectQuery(`^SELECT id FROM screenings WHERE venue_id = \$1 ORDER BY id ASC FOR UPDATE$`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)).AddRow(int64(6)))

	ids, err := repo.ListIDsByVenue(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6}, ids)
}

func TestUpdateGrid_BumpsVersion(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	grid := domain.NewSeatGrid(1, 2)
	grid[0][1] = true

	const query = `^UPDATE screenings SET grid = \$1, grid_version = grid_version \+ 1, updated_at = NOW\(\) WHERE id = \$2 RETURNING grid_version$`

	mock.ExpectQuery(query).
		WithArgs(`[[false,true]]`, 5).
		WillReturnRows(sqlmock.NewRows([]string{"grid_version"}).AddRow(int64(3)))

	version, err := repo.UpdateGrid(context.Background(), 5, grid)
	require.NoError(t, err)
	assert.Equal(t, int64(3), version)

	mock.ExpectQuery(query).
		WithArgs(`[[false,true]]`, 9).
		WillReturnRows(sqlmock.NewRows([]string{"grid_version"}))

	_, err = repo.UpdateGrid(context.Background(), 9, grid)
	assert.ErrorIs(t, err, ErrScreeningNotFound)
}

func TestDelete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(`^DELETE FROM screenings WHERE id = \$1$`).WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 5))

	mock.ExpectExec(`^DELETE FROM screenings WHERE id = \$1$`).WithArgs(9).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 9), ErrScreeningNotFound)
}
