package catalogservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, nopLogger{})
}

func TestGetTitle_OK(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/titles/film/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"kind":"film","name":"Inception","duration_minutes":148}`))
	})

	title, err := client.GetTitle(context.Background(), domain.TitleRef{Kind: domain.TitleKindFilm, ID: 7})
	require.NoError(t, err)
	assert.Equal(t, "Inception", title.Name)
	assert.Equal(t, 148, title.DurationMinutes)
}

func TestGetTitle_Statuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: ErrTitleNotFound},
		{name: "bad request", status: http.StatusBadRequest, wantErr: ErrInvalidResponse},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantErr: ErrInvalidResponse},
		{name: "garbage body", status: http.StatusOK, body: "{", wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetTitle(context.Background(), domain.TitleRef{Kind: domain.TitleKindLiveEvent, ID: 1})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetTitle_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second, nopLogger{})
	_, err := client.GetTitle(context.Background(), domain.TitleRef{Kind: domain.TitleKindFilm, ID: 1})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestTitleExists(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/internal/titles/film/1" {
			_, _ = w.Write([]byte(`{"id":1,"kind":"film","name":"Heat"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	ok, err := client.TitleExists(context.Background(), domain.TitleRef{Kind: domain.TitleKindFilm, ID: 1})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.TitleExists(context.Background(), domain.TitleRef{Kind: domain.TitleKindFilm, ID: 2})
	require.NoError(t, err)
	assert.False(t, ok)
}
