package domain

import "time"

// HallStyle decides which end of the hall carries the premium rows.
type HallStyle string

const (
	HallStyleStandard     HallStyle = "standard"
	HallStyleReversedTier HallStyle = "reversed-tier"
)

// IsValid checks the style against the known set.
func (s HallStyle) IsValid() bool {
	return s == HallStyleStandard || s == HallStyleReversedTier
}

// Venue is a theatre with numbered screens sharing one seat-grid shape.
type Venue struct {
	ID        int64
	City      string
	Name      string
	HallStyle HallStyle
	Screens   int // screens are numbered 1..Screens
	Rows      int
	Columns   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasScreen returns true if number is one of the venue's screens
func (v *Venue) HasScreen(number int) bool {
	return number >= 1 && number <= v.Screens
}

// Capacity seats per screen
func (v *Venue) Capacity() int {
	return v.Rows * v.Columns
}
