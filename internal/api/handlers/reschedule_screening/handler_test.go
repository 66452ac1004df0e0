package reschedule_screening

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/screenings/models"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil"
	rescheduleScreening "github.com/m04kA/SMC-ShowtimeService/internal/usecase/reschedule_screening"
	suggestSlot "github.com/m04kA/SMC-ShowtimeService/internal/usecase/suggest_slot"
)

type fakeRescheduler struct {
	got  *rescheduleScreening.Request
	resp *rescheduleScreening.Response
	err  error
}

func (f *fakeRescheduler) Execute(_ context.Context, req *rescheduleScreening.Request) (*rescheduleScreening.Response, error) {
	f.got = req
	return f.resp, f.err
}

type fakeReader struct {
	screening *models.ScreeningResponse
	err       error
}

func (f *fakeReader) GetByID(context.Context, int64) (*models.ScreeningResponse, error) {
	return f.screening, f.err
}

type fakeSuggester struct {
	got  *suggestSlot.Request
	resp *suggestSlot.Response
}

func (f *fakeSuggester) Execute(_ context.Context, req *suggestSlot.Request) (*suggestSlot.Response, error) {
	f.got = req
	return f.resp, nil
}

func patch(h *Handler, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/screenings/"+id+"/schedule", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"screeningId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const moveBody = `{"startsAt": "2024-03-10T19:00:00Z", "endsAt": "2024-03-10T20:30:00Z"}`

func TestHandle_Moved(t *testing.T) {
	start := time.Date(2024, 3, 10, 19, 0, 0, 0, time.UTC)
	uc := &fakeRescheduler{resp: &rescheduleScreening.Response{ID: 7, VenueID: 1, ScreenNumber: 2, StartsAt: start, EndsAt: start.Add(90 * time.Minute)}}
	h := NewHandler(uc, &fakeReader{}, &fakeSuggester{}, &testutil.Logger{})

	rec := patch(h, "7", moveBody)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(7), uc.got.ScreeningID)
	assert.Equal(t, start, uc.got.StartsAt.UTC())

	var body RescheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2024-03-10T20:30:00Z", body.EndsAt)
}

func TestHandle_ConflictSuggestsSlotIgnoringItself(t *testing.T) {
	next := time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC)
	suggester := &fakeSuggester{resp: &suggestSlot.Response{Found: true, StartsAt: next, EndsAt: next.Add(90 * time.Minute)}}
	reader := &fakeReader{screening: &models.ScreeningResponse{ID: 7, VenueID: 3, ScreenNumber: 4}}
	h := NewHandler(&fakeRescheduler{err: rescheduleScreening.ErrTimeConflict}, reader, suggester, &testutil.Logger{})

	rec := patch(h, "7", moveBody)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Suggestion)
	assert.Equal(t, "2024-03-10T21:00:00Z", body.Suggestion.StartsAt)

	require.NotNil(t, suggester.got)
	assert.Equal(t, int64(3), suggester.got.VenueID)
	assert.Equal(t, 4, suggester.got.ScreenNumber)
	assert.Equal(t, 90, suggester.got.DurationMinutes)
	require.NotNil(t, suggester.got.ExcludeScreeningID)
	assert.Equal(t, int64(7), *suggester.got.ExcludeScreeningID)
}

func TestHandle_ConflictWithoutScreeningHasNoSuggestion(t *testing.T) {
	suggester := &fakeSuggester{}
	reader := &fakeReader{err: errors.New("gone")}
	h := NewHandler(&fakeRescheduler{err: rescheduleScreening.ErrTimeConflict}, reader, suggester, &testutil.Logger{})

	rec := patch(h, "7", moveBody)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.NotContains(t, rec.Body.String(), "suggestion")
	assert.Nil(t, suggester.got)
}

func TestHandle_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{"bad id", "abc", moveBody, nil, http.StatusBadRequest},
		{"bad body", "7", "[]", nil, http.StatusBadRequest},
		{"end before start", "7", moveBody, rescheduleScreening.ErrInvalidInterval, http.StatusBadRequest},
		{"missing", "7", moveBody, rescheduleScreening.ErrScreeningNotFound, http.StatusNotFound},
		{"title in city", "7", moveBody, rescheduleScreening.ErrTitleAlreadyInCity, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeRescheduler{err: tt.err}, &fakeReader{}, &fakeSuggester{}, &testutil.Logger{})
			rec := patch(h, tt.id, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
