package fakestore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/booking"
	patronRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/patron"
	screeningRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/screening"
	venueRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/venue"
)

const defaultListLimit = 100

// Venues mirrors venue.Repository
type Venues struct{ s *Store }

func (r *Venues) Create(_ context.Context, v *domain.Venue) (*domain.Venue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("venues.Create"); err != nil {
		return nil, err
	}
	out := *v
	out.ID = r.s.nextIDLocked()
	out.CreatedAt = r.s.now()
	out.UpdatedAt = out.CreatedAt
	r.s.st.venues[out.ID] = out
	return &out, nil
}

func (r *Venues) GetByID(_ context.Context, id int64) (*domain.Venue, error) {
	return r.get("venues.GetByID", id)
}

func (r *Venues) GetByIDForUpdate(_ context.Context, id int64) (*domain.Venue, error) {
	return r.get("venues.GetByIDForUpdate", id)
}

func (r *Venues) get(op string, id int64) (*domain.Venue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked(op); err != nil {
		return nil, err
	}
	v, ok := r.s.st.venues[id]
	if !ok {
		return nil, venueRepo.ErrVenueNotFound
	}
	return &v, nil
}

func (r *Venues) ListByCity(_ context.Context, city string) ([]*domain.Venue, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("venues.ListByCity"); err != nil {
		return nil, err
	}
	out := make([]*domain.Venue, 0)
	for _, v := range r.s.st.venues {
		if v.City == city {
			v := v
			out = append(out, &v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Venues) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("venues.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.st.venues[id]; !ok {
		return venueRepo.ErrVenueNotFound
	}
	for _, sc := range r.s.st.screenings {
		if sc.VenueID == id {
			return fmt.Errorf("%w: Delete - venue %d still has screenings", venueRepo.ErrExecQuery, id)
		}
	}
	delete(r.s.st.venues, id)
	return nil
}

// Screenings mirrors screening.Repository
type Screenings struct{ s *Store }

func (r *Screenings) Create(_ context.Context, sc *domain.Screening) (*domain.Screening, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("screenings.Create"); err != nil {
		return nil, err
	}
	if !sc.StartsAt.Before(sc.EndsAt) {
		return nil, fmt.Errorf("%w: Create - check constraint starts_at < ends_at", screeningRepo.ErrExecQuery)
	}
	out := *sc
	out.ID = r.s.nextIDLocked()
	out.Grid = sc.Grid.Clone()
	out.GridVersion = 1
	out.CreatedAt = r.s.now()
	out.UpdatedAt = out.CreatedAt
	r.s.st.screenings[out.ID] = out

	ret := out
	ret.Grid = out.Grid.Clone()
	return &ret, nil
}

func (r *Screenings) GetByID(_ context.Context, id int64) (*domain.Screening, error) {
	return r.get("screenings.GetByID", id)
}

func (r *Screenings) GetByIDForUpdate(_ context.Context, id int64) (*domain.Screening, error) {
	return r.get("screenings.GetByIDForUpdate", id)
}

func (r *Screenings) get(op string, id int64) (*domain.Screening, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked(op); err != nil {
		return nil, err
	}
	sc, ok := r.s.st.screenings[id]
	if !ok {
		return nil, screeningRepo.ErrScreeningNotFound
	}
	sc.Grid = sc.Grid.Clone()
	return &sc, nil
}

func (r *Screenings) ListIntervalsByScreen(_ context.Context, venueID int64, screenNumber int, excludeID *int64) ([]domain.Interval, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("screenings.ListIntervalsByScreen"); err != nil {
		return nil, err
	}
	out := make([]domain.Interval, 0)
	for _, sc := range r.s.st.screenings {
		if sc.VenueID != venueID || sc.ScreenNumber != screenNumber {
			continue
		}
		if excludeID != nil && sc.ID == *excludeID {
			continue
		}
		out = append(out, domain.Interval{ScreeningID: sc.ID, StartsAt: sc.StartsAt, EndsAt: sc.EndsAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *Screenings) ExistsTitleInCity(_ context.Context, city string, title domain.TitleRef, from, to time.Time, excludeID *int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("screenings.ExistsTitleInCity"); err != nil {
		return false, err
	}
	for _, sc := range r.s.st.screenings {
		if sc.Title != title {
			continue
		}
		if excludeID != nil && sc.ID == *excludeID {
			continue
		}
		v, ok := r.s.st.venues[sc.VenueID]
		if !ok || v.City != city {
			continue
		}
		if !sc.StartsAt.Before(from) && sc.StartsAt.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *Screenings) ListByScreenBetween(_ context.Context, venueID int64, screenNumber int, from, to time.Time) ([]*domain.Screening, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("screenings.ListByScreenBetween"); err != nil {
		return nil, err
	}
	out := make([]*domain.Screening, 0)
	for _, sc := range r.s.st.screenings {
		if sc.VenueID != venueID || sc.ScreenNumber != screenNumber {
			continue
		}
		if sc.StartsAt.Before(from) || !sc.StartsAt.Before(to) {
			continue
		}
		sc := sc
		sc.Grid = sc.Grid.Clone()
		out = append(out, &sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, nil
}

func (r *Screenings) ListIDsByTitle(_ context.Context, title domain.TitleRef) ([]int64, error) {
	return r.listIDs("screenings.ListIDsByTitle", func(sc domain.Screening) bool { return sc.Title == title })
}

func (r *Screenings) ListIDsByVenue(_ context.Context, venueID int64) ([]int64, error) {
	return r.listIDs("screenings.ListIDsByVenue", func(sc domain.Screening) bool { return sc.VenueID == venueID })
}

func (r *Screenings) listIDs(op string, match func(domain.Screening) bool) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked(op); err != nil {
		return nil, err
	}
	ids := make([]int64, 0)
	for id, sc := range r.s.st.screenings {
		if match(sc) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *Screenings) UpdateInterval(_ context.Context, id int64, start, end time.Time) (time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("screenings.UpdateInterval"); err != nil {
		return time.Time{}, err
	}
	sc, ok := r.s.st.screenings[id]
	if !ok {
		return time.Time{}, screeningRepo.ErrScreeningNotFound
	}
	sc.StartsAt = start
	sc.EndsAt = end
	sc.UpdatedAt = r.s.now()
	r.s.st.screenings[id] = sc
	return sc.UpdatedAt, nil
}

func (r *Screenings) UpdateGrid(_ context.Context, id int64, grid domain.SeatGrid) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("screenings.UpdateGrid"); err != nil {
		return 0, err
	}
	sc, ok := r.s.st.screenings[id]
	if !ok {
		return 0, screeningRepo.ErrScreeningNotFound
	}
	sc.Grid = grid.Clone()
	sc.GridVersion++
	sc.UpdatedAt = r.s.now()
	r.s.st.screenings[id] = sc
	return sc.GridVersion, nil
}

func (r *Screenings) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("screenings.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.st.screenings[id]; !ok {
		return screeningRepo.ErrScreeningNotFound
	}
	delete(r.s.st.screenings, id)
	return nil
}

// Patrons mirrors patron.Repository
type Patrons struct{ s *Store }

func (r *Patrons) GetByID(_ context.Context, id int64) (*domain.Patron, error) {
	return r.get("patrons.GetByID", id)
}

func (r *Patrons) GetByIDForUpdate(_ context.Context, id int64) (*domain.Patron, error) {
	return r.get("patrons.GetByIDForUpdate", id)
}

func (r *Patrons) get(op string, id int64) (*domain.Patron, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked(op); err != nil {
		return nil, err
	}
	p, ok := r.s.st.patrons[id]
	if !ok {
		return nil, patronRepo.ErrPatronNotFound
	}
	return &p, nil
}

func (r *Patrons) Debit(_ context.Context, id int64, amount int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("patrons.Debit"); err != nil {
		return 0, err
	}
	p, ok := r.s.st.patrons[id]
	if !ok || p.Balance < amount {
		return 0, patronRepo.ErrInsufficientFunds
	}
	p.Balance -= amount
	p.UpdatedAt = r.s.now()
	r.s.st.patrons[id] = p
	return p.Balance, nil
}

func (r *Patrons) Credit(_ context.Context, id int64, amount int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("patrons.Credit"); err != nil {
		return 0, err
	}
	p, ok := r.s.st.patrons[id]
	if !ok {
		return 0, patronRepo.ErrPatronNotFound
	}
	p.Balance += amount
	p.UpdatedAt = r.s.now()
	r.s.st.patrons[id] = p
	return p.Balance, nil
}

func (r *Patrons) TopUp(_ context.Context, id int64, amount int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("patrons.TopUp"); err != nil {
		return 0, err
	}
	p := r.s.st.patrons[id]
	p.ID = id
	p.Balance += amount
	p.UpdatedAt = r.s.now()
	r.s.st.patrons[id] = p
	return p.Balance, nil
}

// Bookings mirrors booking.Repository
type Bookings struct{ s *Store }

func (r *Bookings) CreateBatch(_ context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("bookings.CreateBatch"); err != nil {
		return nil, err
	}
	for _, b := range bookings {
		for _, existing := range r.s.st.bookings {
			if existing.Status == domain.StatusConfirmed && existing.ScreeningID == b.ScreeningID && existing.SeatLabel == b.SeatLabel {
				return nil, fmt.Errorf("%w: CreateBatch - duplicate confirmed seat %s", bookingRepo.ErrExecQuery, b.SeatLabel)
			}
		}
	}
	now := r.s.now()
	for _, b := range bookings {
		b.ID = r.s.nextIDLocked()
		b.CreatedAt = now
		b.UpdatedAt = now
		r.s.st.bookings[b.ID] = *b
	}
	return bookings, nil
}

func (r *Bookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("bookings.GetByID"); err != nil {
		return nil, err
	}
	b, ok := r.s.st.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (r *Bookings) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("bookings.List"); err != nil {
		return nil, err
	}
	matched := make([]domain.Booking, 0)
	for _, b := range r.s.st.bookings {
		if filter.PatronID != nil && b.PatronID != *filter.PatronID {
			continue
		}
		if filter.ScreeningID != nil && b.ScreeningID != *filter.ScreeningID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	limit := filter.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	out := make([]*domain.Booking, 0)
	for i := filter.Offset; i < uint64(len(matched)) && uint64(len(out)) < limit; i++ {
		b := matched[i]
		out = append(out, &b)
	}
	return out, nil
}

func (r *Bookings) ListConfirmedByScreening(_ context.Context, screeningID int64) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("bookings.ListConfirmedByScreening"); err != nil {
		return nil, err
	}
	matched := make([]domain.Booking, 0)
	for _, b := range r.s.st.bookings {
		if b.ScreeningID == screeningID && b.Status == domain.StatusConfirmed {
			matched = append(matched, b)
		}
	}
	sortBookingsByID(matched)
	out := make([]*domain.Booking, len(matched))
	for i := range matched {
		out[i] = &matched[i]
	}
	return out, nil
}

func (r *Bookings) MarkRefunded(_ context.Context, ids []int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failLocked("bookings.MarkRefunded"); err != nil {
		return 0, err
	}
	var changed int64
	for _, id := range ids {
		b, ok := r.s.st.bookings[id]
		if !ok || b.Status != domain.StatusConfirmed {
			continue
		}
		b.Status = domain.StatusCancelled
		b.Refunded = true
		b.UpdatedAt = r.s.now()
		r.s.st.bookings[id] = b
		changed++
	}
	return changed, nil
}

func sortBookingsByID(bookings []domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
}
