package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) IsValid() bool {
	return s == StatusConfirmed || s == StatusCancelled
}

// Booking is one reserved seat. Rows are never deleted.
type Booking struct {
	ID          int64
	PatronID    int64
	ScreeningID int64
	SeatLabel   string
	Amount      int64 // charged at booking time, minor units
	Status      BookingStatus
	Refunded    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsConfirmed returns true if the booking still holds its seat
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// BookingsFilter narrows booking listings.
type BookingsFilter struct {
	PatronID    *int64
	ScreeningID *int64
	Status      *BookingStatus
	Limit       uint64
	Offset      uint64
}

// Patron holds the prepaid balance of an account managed elsewhere.
type Patron struct {
	ID        int64
	Balance   int64
	UpdatedAt time.Time
}

// Role of the caller.
type Role string

const (
	RolePatron   Role = "patron"
	RoleOperator Role = "operator"
)

func (r Role) IsValid() bool {
	return r == RolePatron || r == RoleOperator
}

// Session identifies the caller of an operation.
type Session struct {
	PatronID int64
	Role     Role
}

func (s Session) IsOperator() bool {
	return s.Role == RoleOperator
}

// CanAccessPatron reports whether the caller may read data of patronID.
func (s Session) CanAccessPatron(patronID int64) bool {
	return s.IsOperator() || s.PatronID == patronID
}
