package domain

import (
	"fmt"
	"time"
)

// TitleKind distinguishes the two catalogs a screening can reference.
type TitleKind string

const (
	TitleKindFilm      TitleKind = "film"
	TitleKindLiveEvent TitleKind = "live_event"
)

func (k TitleKind) IsValid() bool {
	return k == TitleKindFilm || k == TitleKindLiveEvent
}

// TitleRef references exactly one film or one live event.
type TitleRef struct {
	Kind TitleKind
	ID   int64
}

func (t TitleRef) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// Prices are per-tier seat prices in minor currency units.
type Prices struct {
	Economy int64 `json:"economy"`
	Central int64 `json:"central"`
	Premium int64 `json:"premium"`
}

// For returns the price of the tier.
func (p Prices) For(tier Tier) int64 {
	switch tier {
	case TierPremium:
		return p.Premium
	case TierCentral:
		return p.Central
	default:
		return p.Economy
	}
}

// IsValid rejects negative prices.
func (p Prices) IsValid() bool {
	return p.Economy >= 0 && p.Central >= 0 && p.Premium >= 0
}

// Screening is one presentation of a title on one screen for one interval.
type Screening struct {
	ID           int64
	VenueID      int64
	ScreenNumber int
	Title        TitleRef
	StartsAt     time.Time
	EndsAt       time.Time
	Grid         SeatGrid
	Prices       Prices
	// GridVersion grows with every grid write; seat maps carry it
	GridVersion  int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Duration of the screening
func (s *Screening) Duration() time.Duration {
	return s.EndsAt.Sub(s.StartsAt)
}

// Interval is the time slot a screening occupies on its screen.
type Interval struct {
	ScreeningID int64
	StartsAt    time.Time
	EndsAt      time.Time
}

// Overlaps reports whether [start, end) intersects the interval. Touching endpoints do not overlap.
func (i Interval) Overlaps(start, end time.Time) bool {
	return IntervalsOverlap(i.StartsAt, i.EndsAt, start, end)
}

// IntervalsOverlap implements half-open overlap: max(aStart, bStart) < min(aEnd, bEnd).
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	latestStart := aStart
	if bStart.After(latestStart) {
		latestStart = bStart
	}
	earliestEnd := aEnd
	if bEnd.Before(earliestEnd) {
		earliestEnd = bEnd
	}
	return latestStart.Before(earliestEnd)
}

// DayBounds returns [00:00, next 00:00) of t's calendar date in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// SameDate compares calendar dates of a and b in loc.
func SameDate(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
