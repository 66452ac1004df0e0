package list_screenings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowtimeService/internal/service/screenings"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/screenings/models"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil"
)

type fakeService struct {
	got *models.ListRequest
	err error
}

func (f *fakeService) ListByScreenOnDate(_ context.Context, req *models.ListRequest) (*models.ScreeningListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.ScreeningListResponse{VenueID: req.VenueID, ScreenNumber: req.ScreenNumber, Screenings: []*models.ScreeningResponse{}}, nil
}

func list(h *Handler, venue, screen, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/venues/"+venue+"/screens/"+screen+"/screenings"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"venueId": venue, "screen": screen})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_DateIsReadInScheduleZone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	svc := &fakeService{}
	h := NewHandler(svc, loc, &testutil.Logger{})

	rec := list(h, "4", "2", "?date=2024-03-10")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(4), svc.got.VenueID)
	assert.Equal(t, 2, svc.got.ScreenNumber)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), svc.got.Date)
}

func TestHandle_BadInput(t *testing.T) {
	tests := []struct {
		name   string
		venue  string
		screen string
		query  string
	}{
		{"missing date", "4", "2", ""},
		{"bad date", "4", "2", "?date=10.03.2024"},
		{"bad venue", "x", "2", "?date=2024-03-10"},
		{"zero screen", "4", "0", "?date=2024-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			h := NewHandler(svc, time.UTC, &testutil.Logger{})

			rec := list(h, tt.venue, tt.screen, tt.query)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, svc.got)
		})
	}
}

func TestHandle_UnknownScreen(t *testing.T) {
	h := NewHandler(&fakeService{err: screenings.ErrInvalidInput}, time.UTC, &testutil.Logger{})

	rec := list(h, "4", "9", "?date=2024-03-10")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
