package venues

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/venues/models"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil/fakestore"
)

func validRequest() models.CreateVenueRequest {
	return models.CreateVenueRequest{
		City:      "Mumbai",
		Name:      " Regal ",
		HallStyle: "standard",
		Screens:   3,
		Rows:      10,
		Columns:   12,
	}
}

func TestCreate(t *testing.T) {
	store := fakestore.New()
	svc := NewService(store.Venues(), &testutil.Logger{})
	req := validRequest()

	resp, err := svc.Create(context.Background(), &req)
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Regal", resp.Name)
	assert.Equal(t, 120, resp.Capacity)

	stored, ok := store.Venue(resp.ID)
	require.True(t, ok)
	assert.Equal(t, domain.HallStyleStandard, stored.HallStyle)

	got, err := svc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp, got)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.CreateVenueRequest)
	}{
		{"missing city", func(r *models.CreateVenueRequest) { r.City = "  " }},
		{"missing name", func(r *models.CreateVenueRequest) { r.Name = "" }},
		{"unknown style", func(r *models.CreateVenueRequest) { r.HallStyle = "balcony" }},
		{"no screens", func(r *models.CreateVenueRequest) { r.Screens = 0 }},
		{"too many screens", func(r *models.CreateVenueRequest) { r.Screens = 51 }},
		{"no rows", func(r *models.CreateVenueRequest) { r.Rows = 0 }},
		{"more rows than letters", func(r *models.CreateVenueRequest) { r.Rows = 27 }},
		{"too many columns", func(r *models.CreateVenueRequest) { r.Columns = 51 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := fakestore.New()
			svc := NewService(store.Venues(), &testutil.Logger{})
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Create(context.Background(), &req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreate_EdgeSizesAccepted(t *testing.T) {
	svc := NewService(fakestore.New().Venues(), &testutil.Logger{})
	req := validRequest()
	req.Rows, req.Columns, req.Screens, req.HallStyle = 26, 50, 50, "reversed-tier"

	resp, err := svc.Create(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, 1300, resp.Capacity)
}

func TestCreate_StoreFailure(t *testing.T) {
	store := fakestore.New()
	store.FailOn("venues.Create", errors.New("boom"), 1)
	svc := NewService(store.Venues(), &testutil.Logger{})
	req := validRequest()

	_, err := svc.Create(context.Background(), &req)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetByID_Errors(t *testing.T) {
	store := fakestore.New()
	svc := NewService(store.Venues(), &testutil.Logger{})

	_, err := svc.GetByID(context.Background(), 77)
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = svc.GetByID(context.Background(), -1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	store.FailOn("venues.GetByID", &pq.Error{Code: "53300"}, 1)
	_, err = svc.GetByID(context.Background(), 77)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestListByCity(t *testing.T) {
	store := fakestore.New()
	store.AddVenue(domain.Venue{City: "Mumbai", Name: "Regal", HallStyle: domain.HallStyleStandard, Screens: 1, Rows: 5, Columns: 5})
	store.AddVenue(domain.Venue{City: "Mumbai", Name: "Eros", HallStyle: domain.HallStyleStandard, Screens: 1, Rows: 5, Columns: 5})
	store.AddVenue(domain.Venue{City: "Pune", Name: "City Pride", HallStyle: domain.HallStyleStandard, Screens: 1, Rows: 5, Columns: 5})
	svc := NewService(store.Venues(), &testutil.Logger{})

	resp, err := svc.ListByCity(context.Background(), "Mumbai")
	require.NoError(t, err)
	require.Len(t, resp.Venues, 2)
	assert.Equal(t, "Regal", resp.Venues[0].Name)

	_, err = svc.ListByCity(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
