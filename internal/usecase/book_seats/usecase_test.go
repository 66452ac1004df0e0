package book_seats

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/infra/broker"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil/fakestore"
)

const patronID = 7

type fakeCache struct {
	mu          sync.Mutex
	stored      []*domain.SeatMap
	invalidated []int64
	err         error
}

func (c *fakeCache) Set(_ context.Context, m *domain.SeatMap) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.stored = append(c.stored, m)
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, ids ...int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, ids...)
	return c.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []broker.BookingConfirmedEvent
	err    error
}

func (p *fakePublisher) PublishBookingConfirmed(_ context.Context, e broker.BookingConfirmedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc        *UseCase
	store     *fakestore.Store
	cache     *fakeCache
	publisher *fakePublisher
	screening *domain.Screening
}

func newFixture(t *testing.T, balance int64) *fixture {
	t.Helper()
	store := fakestore.New()
	venue := store.AddVenue(domain.Venue{City: "Mumbai", Name: "Regal", HallStyle: domain.HallStyleStandard, Screens: 1, Rows: 10, Columns: 10})
	screening := store.AddScreening(domain.Screening{
		VenueID: venue.ID, ScreenNumber: 1, Title: domain.TitleRef{Kind: domain.TitleKindFilm, ID: 1},
		StartsAt: time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC), EndsAt: time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC),
		Prices: domain.Prices{Economy: 30, Central: 50, Premium: 60},
	})
	store.SetBalance(patronID, balance)

	f := &fixture{store: store, cache: &fakeCache{}, publisher: &fakePublisher{}, screening: screening}
	f.uc = NewUseCase(store.Screenings(), store.Venues(), store.Patrons(), store.Bookings(),
		f.cache, f.publisher, store.TxManager(), &testutil.Logger{})
	f.uc.timeProvider = fixedClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	return f
}

func (f *fixture) book(seats ...string) (*Receipt, error) {
	return f.uc.Execute(context.Background(), &Request{PatronID: patronID, ScreeningID: f.screening.ID, SeatLabels: seats})
}

func (f *fixture) assertUntouched(t *testing.T, balance int64) {
	t.Helper()
	got, _ := f.store.Balance(patronID)
	assert.Equal(t, balance, got)
	stored, _ := f.store.Screening(f.screening.ID)
	assert.Equal(t, 0, stored.Grid.Occupancy())
	assert.Empty(t, f.store.AllBookings())
}

func TestExecute_ChargesTierPrices(t *testing.T) {
	f := newFixture(t, 200)

	// row A is premium (60), row D is central (50)
	receipt, err := f.book("A1", "D1")
	require.NoError(t, err)

	assert.Equal(t, int64(110), receipt.Total)
	assert.Equal(t, int64(90), receipt.Balance)
	require.Len(t, receipt.Seats, 2)
	assert.Equal(t, BookedSeat{BookingID: receipt.Seats[0].BookingID, Label: "A1", Tier: domain.TierPremium, Amount: 60}, receipt.Seats[0])
	assert.Equal(t, domain.TierCentral, receipt.Seats[1].Tier)

	balance, _ := f.store.Balance(patronID)
	assert.Equal(t, int64(90), balance)

	bookings := f.store.AllBookings()
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(60), bookings[0].Amount)
	assert.Equal(t, int64(50), bookings[1].Amount)
	for _, b := range bookings {
		assert.Equal(t, domain.StatusConfirmed, b.Status)
		assert.False(t, b.Refunded)
	}

	stored, _ := f.store.Screening(f.screening.ID)
	assert.False(t, stored.Grid.IsAvailable(0, 0))
	assert.False(t, stored.Grid.IsAvailable(3, 0))
	assert.Equal(t, 2, stored.Grid.Occupancy())

	require.Len(t, f.cache.stored, 1)
	cached := f.cache.stored[0]
	assert.Equal(t, f.screening.ID, cached.ScreeningID)
	assert.Equal(t, stored.GridVersion, cached.Version)
	assert.Equal(t, f.screening.GridVersion+1, cached.Version)
	assert.Equal(t, 2, cached.Occupied)
	assert.False(t, cached.Seats[0].Available)
	assert.Empty(t, f.cache.invalidated)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, []string{"A1", "D1"}, f.publisher.events[0].Seats)
	assert.Equal(t, receipt.BookingIDs(), f.publisher.events[0].BookingIDs)
}

func TestExecute_InsufficientBalanceChangesNothing(t *testing.T) {
	f := newFixture(t, 100)

	_, err := f.book("A1", "D1")
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	f.assertUntouched(t, 100)
	assert.Empty(t, f.publisher.events)
	assert.Empty(t, f.cache.stored)
	assert.Empty(t, f.cache.invalidated)
}

func TestExecute_SeatAlreadyTaken(t *testing.T) {
	f := newFixture(t, 500)
	_, err := f.book("C3")
	require.NoError(t, err)

	_, err = f.book("B2", "C3")
	require.ErrorIs(t, err, domain.ErrSeatUnavailable)

	var seatErr *domain.SeatUnavailableError
	require.True(t, errors.As(err, &seatErr))
	assert.Equal(t, "C3", seatErr.Label)

	stored, _ := f.store.Screening(f.screening.ID)
	assert.True(t, stored.Grid.IsAvailable(1, 1), "B2 must stay free")
	assert.Len(t, f.store.AllBookings(), 1)
}

func TestExecute_DuplicateLabelsCollapse(t *testing.T) {
	f := newFixture(t, 500)

	receipt, err := f.book("J10", "j10", " J10 ")
	require.NoError(t, err)

	require.Len(t, receipt.Seats, 1)
	assert.Equal(t, domain.TierEconomy, receipt.Seats[0].Tier)
	assert.Equal(t, int64(30), receipt.Total)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		seats   []string
		wantErr error
	}{
		{name: "empty", seats: nil, wantErr: domain.ErrEmptySelection},
		{name: "malformed label", seats: []string{"1A"}, wantErr: domain.ErrInvalidInput},
		{name: "row outside hall", seats: []string{"K1"}, wantErr: domain.ErrInvalidInput},
		{name: "column outside hall", seats: []string{"A11"}, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, 500)
			_, err := f.book(tt.seats...)
			assert.ErrorIs(t, err, tt.wantErr)
			f.assertUntouched(t, 500)
		})
	}
}

func TestExecute_UnknownScreeningAndPatron(t *testing.T) {
	f := newFixture(t, 500)

	_, err := f.uc.Execute(context.Background(), &Request{PatronID: patronID, ScreeningID: 9999, SeatLabels: []string{"A1"}})
	assert.ErrorIs(t, err, ErrScreeningNotFound)

	_, err = f.uc.Execute(context.Background(), &Request{PatronID: 12345, ScreeningID: f.screening.ID, SeatLabels: []string{"A1"}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	f.assertUntouched(t, 500)
}

func TestExecute_FailureAfterDebitRollsBack(t *testing.T) {
	f := newFixture(t, 500)
	f.store.FailOn("bookings.CreateBatch", errors.New("disk full"), 1)

	_, err := f.book("A1")
	assert.ErrorIs(t, err, ErrInternal)

	f.assertUntouched(t, 500)
}

func TestExecute_SideEffectFailuresDoNotFailBooking(t *testing.T) {
	f := newFixture(t, 500)
	f.cache.err = errors.New("redis down")
	f.publisher.err = errors.New("rabbit down")

	receipt, err := f.book("A1")
	require.NoError(t, err)
	assert.Equal(t, int64(440), receipt.Balance)
	assert.Equal(t, []int64{f.screening.ID}, f.cache.invalidated)
}

func TestExecute_ConcurrentBookingsOfOneSeat(t *testing.T) {
	f := newFixture(t, 1000)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		taken     int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.book("E5")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrSeatUnavailable):
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, taken)
	balance, _ := f.store.Balance(patronID)
	assert.Equal(t, int64(950), balance)
}
