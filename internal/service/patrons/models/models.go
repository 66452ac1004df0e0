package models

import "time"

// TopUpRequest credits a patron wallet. Amount is in minor units.
type TopUpRequest struct {
	PatronID int64 `json:"-"`
	Amount   int64 `json:"amount"`
}

// BalanceResponse current wallet balance
type BalanceResponse struct {
	PatronID  int64      `json:"patronId"`
	Balance   int64      `json:"balance"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
