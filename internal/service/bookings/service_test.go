package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil/fakestore"
	"github.com/m04kA/SMC-ShowtimeService/pkg/ptr"
)

var (
	alice    = domain.Session{PatronID: 1, Role: domain.RolePatron}
	bob      = domain.Session{PatronID: 2, Role: domain.RolePatron}
	operator = domain.Session{PatronID: 99, Role: domain.RoleOperator}
)

func seedLedger(t *testing.T) (*fakestore.Store, []*domain.Booking) {
	t.Helper()
	store := fakestore.New()
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	var created []*domain.Booking
	for _, b := range []domain.Booking{
		{PatronID: 1, ScreeningID: 10, SeatLabel: "A1", Amount: 60, Status: domain.StatusConfirmed},
		{PatronID: 1, ScreeningID: 10, SeatLabel: "A2", Amount: 60, Status: domain.StatusCancelled, Refunded: true},
		{PatronID: 2, ScreeningID: 10, SeatLabel: "J1", Amount: 30, Status: domain.StatusConfirmed},
		{PatronID: 1, ScreeningID: 11, SeatLabel: "E5", Amount: 50, Status: domain.StatusConfirmed},
	} {
		b := b
		out, err := store.Bookings().CreateBatch(context.Background(), []*domain.Booking{&b})
		require.NoError(t, err)
		created = append(created, out[0])
	}
	return store, created
}

func TestGetByID_Access(t *testing.T) {
	store, created := seedLedger(t)
	svc := NewService(store.Bookings(), &testutil.Logger{})
	ctx := context.Background()
	own := created[0]

	got, err := svc.GetByID(ctx, own.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "A1", got.SeatLabel)
	assert.Equal(t, int64(60), got.Amount)
	assert.Equal(t, "confirmed", got.Status)

	_, err = svc.GetByID(ctx, own.ID, bob)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetByID(ctx, own.ID, operator)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, 4242, operator)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(ctx, 0, operator)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_StoreFailures(t *testing.T) {
	store, created := seedLedger(t)
	svc := NewService(store.Bookings(), &testutil.Logger{})

	store.FailOn("bookings.GetByID", &pq.Error{Code: "08006"}, 1)
	_, err := svc.GetByID(context.Background(), created[0].ID, alice)
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	store.FailOn("bookings.GetByID", errors.New("boom"), 1)
	_, err = svc.GetByID(context.Background(), created[0].ID, alice)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetPatronBookings(t *testing.T) {
	store, created := seedLedger(t)
	svc := NewService(store.Bookings(), &testutil.Logger{})
	ctx := context.Background()

	all, err := svc.GetPatronBookings(ctx, &models.GetPatronBookingsRequest{Session: alice, PatronID: 1})
	require.NoError(t, err)
	require.Len(t, all.Bookings, 3)
	assert.Equal(t, created[3].ID, all.Bookings[0].ID, "newest first")

	confirmed, err := svc.GetPatronBookings(ctx, &models.GetPatronBookingsRequest{
		Session: alice, PatronID: 1, Status: ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, confirmed.Bookings, 2)
	for _, b := range confirmed.Bookings {
		assert.Equal(t, "confirmed", b.Status)
	}

	cancelled, err := svc.GetPatronBookings(ctx, &models.GetPatronBookingsRequest{
		Session: operator, PatronID: 1, Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	require.Len(t, cancelled.Bookings, 1)
	assert.True(t, cancelled.Bookings[0].Refunded)

	page, err := svc.GetPatronBookings(ctx, &models.GetPatronBookingsRequest{Session: alice, PatronID: 1, Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Bookings, 1)
	assert.Equal(t, created[1].ID, page.Bookings[0].ID)
}

func TestGetPatronBookings_Rejections(t *testing.T) {
	store, _ := seedLedger(t)
	svc := NewService(store.Bookings(), &testutil.Logger{})

	tests := []struct {
		name    string
		req     models.GetPatronBookingsRequest
		wantErr error
	}{
		{"other patron", models.GetPatronBookingsRequest{Session: bob, PatronID: 1}, ErrAccessDenied},
		{"unknown status", models.GetPatronBookingsRequest{Session: alice, PatronID: 1, Status: ptr.Ptr("pending")}, ErrInvalidInput},
		{"bad patron", models.GetPatronBookingsRequest{Session: operator, PatronID: 0}, ErrInvalidInput},
		{"page too large", models.GetPatronBookingsRequest{Session: alice, PatronID: 1, Limit: 500}, ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := svc.GetPatronBookings(context.Background(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetPatronBookings_EmptyHistory(t *testing.T) {
	svc := NewService(fakestore.New().Bookings(), &testutil.Logger{})

	resp, err := svc.GetPatronBookings(context.Background(), &models.GetPatronBookingsRequest{Session: alice, PatronID: 1})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}
