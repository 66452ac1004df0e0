package conflicts

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

// Checker answers the two scheduling questions: does an interval collide with another
// screening on the same screen, and is the title already shown in the city that day.
// Neither check writes anything.
type Checker struct {
	repo     ScreeningRepository
	location *time.Location
	logger   Logger
}

// NewChecker creates a checker. Calendar dates are taken in loc.
func NewChecker(repo ScreeningRepository, loc *time.Location, logger Logger) *Checker {
	if loc == nil {
		loc = time.UTC
	}
	return &Checker{
		repo:     repo,
		location: loc,
		logger:   logger,
	}
}

// Location used for calendar dates
func (c *Checker) Location() *time.Location {
	return c.location
}

// Schedule is a snapshot of the intervals taken on one screen
type Schedule []domain.Interval

// Conflicts returns the first interval overlapping [start, end)
func (s Schedule) Conflicts(start, end time.Time) (domain.Interval, bool) {
	for _, iv := range s {
		if iv.Overlaps(start, end) {
			return iv, true
		}
	}
	return domain.Interval{}, false
}

// ScreenSchedule loads the intervals of every screening on the screen except excludeID
func (c *Checker) ScreenSchedule(ctx context.Context, venueID int64, screenNumber int, excludeID *int64) (Schedule, error) {
	intervals, err := c.repo.ListIntervalsByScreen(ctx, venueID, screenNumber, excludeID)
	if err != nil {
		c.logger.Error("ScreenSchedule: failed to list screenings of venue=%d screen=%d: %v", venueID, screenNumber, err)
		return nil, fmt.Errorf("%w: ScreenSchedule - list intervals: %w", ErrInternal, err)
	}
	return Schedule(intervals), nil
}

// HasConflict reports whether [start, end) overlaps any screening on the screen other than excludeID.
// The caller guarantees start < end.
func (c *Checker) HasConflict(ctx context.Context, venueID int64, screenNumber int, start, end time.Time, excludeID *int64) (bool, error) {
	schedule, err := c.ScreenSchedule(ctx, venueID, screenNumber, excludeID)
	if err != nil {
		return false, err
	}

	iv, conflict := schedule.Conflicts(start, end)
	if conflict {
		c.logger.Info("HasConflict: venue=%d screen=%d [%s, %s) overlaps screening id=%d",
			venueID, screenNumber, start.Format(time.RFC3339), end.Format(time.RFC3339), iv.ScreeningID)
	}
	return conflict, nil
}

// HasTitleOnDate reports whether the title already starts on date's calendar day at any venue of the city
func (c *Checker) HasTitleOnDate(ctx context.Context, city string, title domain.TitleRef, date time.Time, excludeID *int64) (bool, error) {
	from, to := domain.DayBounds(date, c.location)

	exists, err := c.repo.ExistsTitleInCity(ctx, city, title, from, to, excludeID)
	if err != nil {
		c.logger.Error("HasTitleOnDate: failed to check title %s in city %q: %v", title, city, err)
		return false, fmt.Errorf("%w: HasTitleOnDate - exists query: %w", ErrInternal, err)
	}

	return exists, nil
}
