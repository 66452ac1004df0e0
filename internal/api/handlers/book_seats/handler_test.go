package book_seats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/middleware"
	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil"
	bookSeats "github.com/m04kA/SMC-ShowtimeService/internal/usecase/book_seats"
)

type fakeBooker struct {
	got     *bookSeats.Request
	receipt *bookSeats.Receipt
	err     error
}

func (f *fakeBooker) Execute(_ context.Context, req *bookSeats.Request) (*bookSeats.Receipt, error) {
	f.got = req
	return f.receipt, f.err
}

func book(h *Handler, session *domain.Session, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/screenings/11/bookings", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"screeningId": "11"})
	if session != nil {
		req = req.WithContext(middleware.WithSession(req.Context(), *session))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

var patron = &domain.Session{PatronID: 42, Role: domain.RolePatron}

func TestHandle_Booked(t *testing.T) {
	uc := &fakeBooker{receipt: &bookSeats.Receipt{
		PatronID:    42,
		ScreeningID: 11,
		Seats: []bookSeats.BookedSeat{
			{BookingID: 1, Label: "A1", Tier: domain.TierPremium, Amount: 200},
			{BookingID: 2, Label: "E5", Tier: domain.TierCentral, Amount: 150},
		},
		Total:   350,
		Balance: 650,
	}}
	h := NewHandler(uc, &testutil.Logger{})

	rec := book(h, patron, `{"seats": ["A1", "E5"]}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(42), uc.got.PatronID)
	assert.Equal(t, int64(11), uc.got.ScreeningID)
	assert.Equal(t, []string{"A1", "E5"}, uc.got.SeatLabels)

	var body ReceiptResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(350), body.Total)
	assert.Equal(t, int64(650), body.Balance)
	require.Len(t, body.Seats, 2)
	assert.Equal(t, "premium", body.Seats[0].Tier)
}

func TestHandle_SeatTakenNamesTheSeat(t *testing.T) {
	err := fmt.Errorf("book_seats: %w", &domain.SeatUnavailableError{Label: "C7"})
	h := NewHandler(&fakeBooker{err: err}, &testutil.Logger{})

	rec := book(h, patron, `{"seats": ["C7"]}`)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body SeatConflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.ReasonSeatUnavailable, body.Reason)
	assert.Equal(t, "C7", body.Seat)
}

func TestHandle_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty selection", bookSeats.ErrEmptySelection, http.StatusBadRequest},
		{"bad label", bookSeats.ErrInvalidInput, http.StatusBadRequest},
		{"no screening", bookSeats.ErrScreeningNotFound, http.StatusNotFound},
		{"no wallet", bookSeats.ErrPatronNotFound, http.StatusNotFound},
		{"not enough money", bookSeats.ErrInsufficientBalance, http.StatusPaymentRequired},
		{"store down", bookSeats.ErrUnavailable, http.StatusServiceUnavailable},
		{"fault", bookSeats.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeBooker{err: tt.err}, &testutil.Logger{})
			rec := book(h, patron, `{"seats": ["A1"]}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_WithoutSession(t *testing.T) {
	uc := &fakeBooker{}
	h := NewHandler(uc, &testutil.Logger{})

	rec := book(h, nil, `{"seats": ["A1"]}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.got)
}
