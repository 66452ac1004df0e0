package get_task

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowtimeService/internal/api/handlers"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil"
	cancelScreenings "github.com/m04kA/SMC-ShowtimeService/internal/usecase/cancel_screenings"
	"github.com/m04kA/SMC-ShowtimeService/pkg/taskrunner"
)

func get(h *Handler, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"taskId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_FinishedCascade(t *testing.T) {
	runner := taskrunner.New(1, time.Hour, &testutil.Logger{})
	t.Cleanup(func() { _ = runner.Shutdown(context.Background()) })

	task, err := runner.Submit("cancel_title", func(context.Context) (interface{}, error) {
		return &cancelScreenings.Result{RefundedBookings: 3, RefundedAmount: 450, PatronsCredited: 2}, nil
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = runner.Wait(ctx, task.ID)
	require.NoError(t, err)

	rec := get(NewHandler(runner, &testutil.Logger{}), task.ID)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		handlers.TaskResponse
		Result handlers.CascadeResponse `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "succeeded", body.Status)
	assert.NotNil(t, body.FinishedAt)
	assert.Equal(t, int64(450), body.Result.RefundedAmount)
	assert.Equal(t, 2, body.Result.PatronsCredited)
}

func TestHandle_UnknownTask(t *testing.T) {
	runner := taskrunner.New(1, time.Hour, &testutil.Logger{})
	t.Cleanup(func() { _ = runner.Shutdown(context.Background()) })

	rec := get(NewHandler(runner, &testutil.Logger{}), "nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
