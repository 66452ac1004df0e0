package reschedule_screening

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/conflicts"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil/fakestore"
)

var (
	inception = domain.TitleRef{Kind: domain.TitleKindFilm, ID: 1}
	heat      = domain.TitleRef{Kind: domain.TitleKindFilm, ID: 2}
)

func at(day, hour int) time.Time {
	return time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC)
}

type fixture struct {
	uc     *UseCase
	store  *fakestore.Store
	mumbai *domain.Venue
	eros   *domain.Venue
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := fakestore.New()
	log := &testutil.Logger{}
	f := &fixture{
		store:  store,
		mumbai: store.AddVenue(domain.Venue{City: "Mumbai", Name: "Regal", HallStyle: domain.HallStyleStandard, Screens: 2, Rows: 4, Columns: 4}),
		eros:   store.AddVenue(domain.Venue{City: "Mumbai", Name: "Eros", HallStyle: domain.HallStyleStandard, Screens: 1, Rows: 4, Columns: 4}),
	}
	checker := conflicts.NewChecker(store.Screenings(), time.UTC, log)
	f.uc = NewUseCase(store.Venues(), store.Screenings(), checker, store.TxManager(), log)
	return f
}

func (f *fixture) add(venue *domain.Venue, screen int, title domain.TitleRef, start, end time.Time) *domain.Screening {
	return f.store.AddScreening(domain.Screening{VenueID: venue.ID, ScreenNumber: screen, Title: title, StartsAt: start, EndsAt: end})
}

func TestExecute_MovesScreeningKeepingGrid(t *testing.T) {
	f := newFixture(t)
	s := f.add(f.mumbai, 1, inception, at(10, 10), at(10, 13))

	grid := domain.NewSeatGrid(4, 4)
	grid[0][0] = true
	_, err := f.store.Screenings().UpdateGrid(context.Background(), s.ID, grid)
	require.NoError(t, err)

	// overlapping its own old interval is fine
	resp, err := f.uc.Execute(context.Background(), &Request{ScreeningID: s.ID, StartsAt: at(10, 11), EndsAt: at(10, 14)})
	require.NoError(t, err)
	assert.Equal(t, at(10, 11), resp.StartsAt)
	assert.Equal(t, 1, resp.Occupied)

	stored, _ := f.store.Screening(s.ID)
	assert.Equal(t, at(10, 14), stored.EndsAt)
	assert.True(t, stored.Grid[0][0])
}

func TestExecute_Rejections(t *testing.T) {
	f := newFixture(t)
	s := f.add(f.mumbai, 1, inception, at(10, 10), at(10, 13))
	f.add(f.mumbai, 1, heat, at(10, 15), at(10, 18))
	f.add(f.eros, 1, inception, at(11, 10), at(11, 13))

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "inverted interval", req: &Request{ScreeningID: s.ID, StartsAt: at(10, 13), EndsAt: at(10, 12)}, wantErr: domain.ErrInvalidInterval},
		{name: "unknown screening", req: &Request{ScreeningID: 9999, StartsAt: at(10, 10), EndsAt: at(10, 12)}, wantErr: ErrScreeningNotFound},
		{name: "screen busy", req: &Request{ScreeningID: s.ID, StartsAt: at(10, 14), EndsAt: at(10, 16)}, wantErr: domain.ErrTimeConflict},
		{name: "title already in city", req: &Request{ScreeningID: s.ID, StartsAt: at(11, 18), EndsAt: at(11, 20)}, wantErr: domain.ErrTitleAlreadyInCity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			stored, _ := f.store.Screening(s.ID)
			assert.Equal(t, at(10, 10), stored.StartsAt, "interval must be untouched")
		})
	}
}

func TestExecute_SameDateKeepsTitleRule(t *testing.T) {
	f := newFixture(t)
	s := f.add(f.mumbai, 1, inception, at(10, 10), at(10, 13))

	// the screening does not block itself on its own date
	_, err := f.uc.Execute(context.Background(), &Request{ScreeningID: s.ID, StartsAt: at(10, 19), EndsAt: at(10, 22)})
	assert.NoError(t, err)
}

// lockLog records row locks in the order they are taken
type lockLog struct {
	mu    sync.Mutex
	locks []string
}

func (l *lockLog) add(lock string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.locks = append(l.locks, lock)
}

type loggedVenues struct {
	*fakestore.Venues
	log *lockLog
}

func (r loggedVenues) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Venue, error) {
	r.log.add("venue")
	return r.Venues.GetByIDForUpdate(ctx, id)
}

type loggedScreenings struct {
	*fakestore.Screenings
	log *lockLog
}

func (r loggedScreenings) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Screening, error) {
	r.log.add("screening")
	return r.Screenings.GetByIDForUpdate(ctx, id)
}

func TestExecute_LocksVenueBeforeScreening(t *testing.T) {
	f := newFixture(t)
	s := f.add(f.mumbai, 1, inception, at(10, 10), at(10, 13))

	locks := &lockLog{}
	log := &testutil.Logger{}
	checker := conflicts.NewChecker(f.store.Screenings(), time.UTC, log)
	uc := NewUseCase(
		loggedVenues{Venues: f.store.Venues(), log: locks},
		loggedScreenings{Screenings: f.store.Screenings(), log: locks},
		checker, f.store.TxManager(), log,
	)

	_, err := uc.Execute(context.Background(), &Request{ScreeningID: s.ID, StartsAt: at(10, 14), EndsAt: at(10, 16)})
	require.NoError(t, err)
	assert.Equal(t, []string{"venue", "screening"}, locks.locks)
}
