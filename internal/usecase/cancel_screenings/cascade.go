package cancel_screenings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	patronRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/patron"
	screeningRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/screening"
)

// cancelInTx refunds and removes the given screenings. It must run inside a transaction;
// credits are summed per patron and applied in patron id order so concurrent cascades
// lock wallets in the same order.
func (uc *UseCase) cancelInTx(ctx context.Context, op string, screeningIDs []int64) (*Result, error) {
	result := &Result{Screenings: make([]CancelledScreening, 0, len(screeningIDs))}
	credits := make(map[int64]int64)

	for _, id := range screeningIDs {
		// 1. Lock the screening
		screening, err := uc.screeningRepo.GetByIDForUpdate(ctx, id)
		if errors.Is(err, screeningRepo.ErrScreeningNotFound) {
			uc.logger.Warn("%s: screening id=%d not found", op, id)
			return nil, ErrScreeningNotFound
		}
		if err != nil {
			return nil, storeError("get screening", err)
		}

		// 2. Bookings still holding seats
		bookings, err := uc.bookingRepo.ListConfirmedByScreening(ctx, id)
		if err != nil {
			return nil, storeError("list bookings", err)
		}

		cancelled := CancelledScreening{ID: screening.ID, VenueID: screening.VenueID, Title: screening.Title}
		bookingIDs := make([]int64, 0, len(bookings))
		for _, b := range bookings {
			bookingIDs = append(bookingIDs, b.ID)
			credits[b.PatronID] += b.Amount
			cancelled.RefundedAmount += b.Amount
		}

		// 3. Flip them to cancelled + refunded
		changed, err := uc.bookingRepo.MarkRefunded(ctx, bookingIDs)
		if err != nil {
			return nil, storeError("mark refunded", err)
		}
		if changed != int64(len(bookingIDs)) {
			return nil, fmt.Errorf("%w: screening %d: %d of %d bookings refunded", ErrInternal, id, changed, len(bookingIDs))
		}
		cancelled.RefundedBookings = len(bookingIDs)

		// 4. Remove the screening; the ledger keeps its bookings
		if err := uc.screeningRepo.Delete(ctx, id); err != nil {
			return nil, storeError("delete screening", err)
		}

		result.Screenings = append(result.Screenings, cancelled)
		result.RefundedBookings += cancelled.RefundedBookings
		result.RefundedAmount += cancelled.RefundedAmount
	}

	// 5. Credit wallets
	patronIDs := make([]int64, 0, len(credits))
	for id := range credits {
		patronIDs = append(patronIDs, id)
	}
	sort.Slice(patronIDs, func(i, j int) bool { return patronIDs[i] < patronIDs[j] })

	for _, patronID := range patronIDs {
		amount := credits[patronID]
		if amount == 0 {
			continue
		}
		if err := uc.refund(ctx, op, patronID, amount); err != nil {
			return nil, err
		}
		result.PatronsCredited++
	}

	return result, nil
}

func (uc *UseCase) refund(ctx context.Context, op string, patronID, amount int64) error {
	_, err := uc.patronRepo.Credit(ctx, patronID, amount)
	if errors.Is(err, patronRepo.ErrPatronNotFound) {
		uc.logger.Warn("%s: wallet of patron id=%d is gone, recreating it for refund of %d", op, patronID, amount)
		_, err = uc.patronRepo.TopUp(ctx, patronID, amount)
	}
	if err != nil {
		return storeError("credit patron", err)
	}
	return nil
}
