package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil"
	"github.com/m04kA/SMC-ShowtimeService/internal/testutil/fakestore"
	"github.com/m04kA/SMC-ShowtimeService/pkg/ptr"
)

var inception = domain.TitleRef{Kind: domain.TitleKindFilm, ID: 42}

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 10, hour, minute, 0, 0, time.UTC)
}

func setup(t *testing.T) (*Checker, *fakestore.Store, *domain.Venue) {
	t.Helper()
	store := fakestore.New()
	venue := store.AddVenue(domain.Venue{City: "Mumbai", Name: "Regal", HallStyle: domain.HallStyleStandard, Screens: 2, Rows: 10, Columns: 10})
	store.AddScreening(domain.Screening{
		VenueID:      venue.ID,
		ScreenNumber: 1,
		Title:        inception,
		StartsAt:     at(10, 0),
		EndsAt:       at(13, 0),
	})
	return NewChecker(store.Screenings(), time.UTC, &testutil.Logger{}), store, venue
}

func TestHasConflict(t *testing.T) {
	checker, _, venue := setup(t)

	tests := []struct {
		name   string
		screen int
		start  time.Time
		end    time.Time
		want   bool
	}{
		{name: "overlapping tail", screen: 1, start: at(12, 0), end: at(14, 0), want: true},
		{name: "touching end", screen: 1, start: at(13, 0), end: at(15, 0), want: false},
		{name: "touching start", screen: 1, start: at(8, 0), end: at(10, 0), want: false},
		{name: "contained", screen: 1, start: at(11, 0), end: at(11, 30), want: true},
		{name: "covering", screen: 1, start: at(9, 0), end: at(14, 0), want: true},
		{name: "other screen", screen: 2, start: at(12, 0), end: at(14, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.HasConflict(context.Background(), venue.ID, tt.screen, tt.start, tt.end, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasConflict_ExcludesItself(t *testing.T) {
	checker, store, venue := setup(t)
	existing := store.AddScreening(domain.Screening{
		VenueID: venue.ID, ScreenNumber: 2, Title: inception, StartsAt: at(15, 0), EndsAt: at(17, 0),
	})

	got, err := checker.HasConflict(context.Background(), venue.ID, 2, at(16, 0), at(18, 0), ptr.Ptr(existing.ID))
	require.NoError(t, err)
	assert.False(t, got)

	got, err = checker.HasConflict(context.Background(), venue.ID, 2, at(16, 0), at(18, 0), nil)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestHasConflict_StoreFailure(t *testing.T) {
	checker, store, venue := setup(t)
	cause := errors.New("connection reset")
	store.FailOn("screenings.ListIntervalsByScreen", cause, 1)

	_, err := checker.HasConflict(context.Background(), venue.ID, 1, at(12, 0), at(14, 0), nil)
	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
}

func TestHasTitleOnDate(t *testing.T) {
	checker, store, _ := setup(t)
	store.AddVenue(domain.Venue{City: "Pune", Name: "City Pride", HallStyle: domain.HallStyleStandard, Screens: 1, Rows: 5, Columns: 5})

	ctx := context.Background()

	got, err := checker.HasTitleOnDate(ctx, "Mumbai", inception, at(20, 0), nil)
	require.NoError(t, err)
	assert.True(t, got, "same city, same date")

	got, err = checker.HasTitleOnDate(ctx, "Pune", inception, at(20, 0), nil)
	require.NoError(t, err)
	assert.False(t, got, "other city")

	got, err = checker.HasTitleOnDate(ctx, "Mumbai", inception, at(10, 0).AddDate(0, 0, 1), nil)
	require.NoError(t, err)
	assert.False(t, got, "next day")

	got, err = checker.HasTitleOnDate(ctx, "Mumbai", domain.TitleRef{Kind: domain.TitleKindLiveEvent, ID: 42}, at(20, 0), nil)
	require.NoError(t, err)
	assert.False(t, got, "same id, other kind")
}

func TestHasTitleOnDate_UsesConfiguredZone(t *testing.T) {
	store := fakestore.New()
	venue := store.AddVenue(domain.Venue{City: "Mumbai", Name: "Regal", HallStyle: domain.HallStyleStandard, Screens: 1, Rows: 5, Columns: 5})
	// 20:00 UTC on the 10th is already the 11th in Kolkata (UTC+05:30)
	store.AddScreening(domain.Screening{
		VenueID: venue.ID, ScreenNumber: 1, Title: inception,
		StartsAt: at(20, 0), EndsAt: at(22, 0),
	})

	kolkata := time.FixedZone("IST", 5*3600+1800)
	checker := NewChecker(store.Screenings(), kolkata, &testutil.Logger{})

	got, err := checker.HasTitleOnDate(context.Background(), "Mumbai", inception, at(10, 0), nil)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = checker.HasTitleOnDate(context.Background(), "Mumbai", inception, at(10, 0).AddDate(0, 0, 1), nil)
	require.NoError(t, err)
	assert.True(t, got)
}
