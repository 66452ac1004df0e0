// Package fakestore is an in-memory stand-in for the PostgreSQL repositories and the
// transaction manager. Transactions run one at a time and roll back by restoring a snapshot.
package fakestore

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	"github.com/m04kA/SMC-ShowtimeService/pkg/txmanager"
)

type state struct {
	venues     map[int64]domain.Venue
	screenings map[int64]domain.Screening
	patrons    map[int64]domain.Patron
	bookings   map[int64]domain.Booking
	lastID     int64
}

func newState() state {
	return state{
		venues:     make(map[int64]domain.Venue),
		screenings: make(map[int64]domain.Screening),
		patrons:    make(map[int64]domain.Patron),
		bookings:   make(map[int64]domain.Booking),
	}
}

func (st state) clone() state {
	c := newState()
	c.lastID = st.lastID
	for id, v := range st.venues {
		c.venues[id] = v
	}
	for id, s := range st.screenings {
		s.Grid = s.Grid.Clone()
		c.screenings[id] = s
	}
	for id, p := range st.patrons {
		c.patrons[id] = p
	}
	for id, b := range st.bookings {
		c.bookings[id] = b
	}
	return c
}

type failure struct {
	err   error
	times int
}

// Store holds every table in memory
type Store struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	st       state
	failures map[string]*failure
	now      func() time.Time
}

func New() *Store {
	return &Store{
		st:       newState(),
		failures: make(map[string]*failure),
		now:      time.Now,
	}
}

// SetClock fixes the timestamps written by the store
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailOn makes the next `times` calls of op return err. Ops are named "<repo>.<Method>",
// e.g. "screenings.GetByIDForUpdate". times <= 0 fails every call.
func (s *Store) FailOn(op string, err error, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = &failure{err: err, times: times}
}

// failLocked returns the injected error for op, if any
func (s *Store) failLocked(op string) error {
	f, ok := s.failures[op]
	if !ok {
		return nil
	}
	if f.times > 0 {
		f.times--
		if f.times == 0 {
			delete(s.failures, op)
		}
	}
	return f.err
}

func (s *Store) nextIDLocked() int64 {
	s.st.lastID++
	return s.st.lastID
}

func (s *Store) Venues() *Venues         { return &Venues{s: s} }
func (s *Store) Screenings() *Screenings { return &Screenings{s: s} }
func (s *Store) Patrons() *Patrons       { return &Patrons{s: s} }
func (s *Store) Bookings() *Bookings     { return &Bookings{s: s} }

// AddVenue seeds a venue and returns it with its id
func (s *Store) AddVenue(v domain.Venue) *domain.Venue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == 0 {
		v.ID = s.nextIDLocked()
	} else if v.ID > s.st.lastID {
		s.st.lastID = v.ID
	}
	s.st.venues[v.ID] = v
	return &v
}

// AddScreening seeds a screening. A nil grid is replaced by an empty rows x columns grid of its venue.
func (s *Store) AddScreening(sc domain.Screening) *domain.Screening {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sc.ID == 0 {
		sc.ID = s.nextIDLocked()
	} else if sc.ID > s.st.lastID {
		s.st.lastID = sc.ID
	}
	if sc.Grid == nil {
		if v, ok := s.st.venues[sc.VenueID]; ok {
			sc.Grid = domain.NewSeatGrid(v.Rows, v.Columns)
		}
	}
	sc.Grid = sc.Grid.Clone()
	if sc.GridVersion == 0 {
		sc.GridVersion = 1
	}
	s.st.screenings[sc.ID] = sc
	out := sc
	out.Grid = sc.Grid.Clone()
	return &out
}

// SetBalance seeds a patron balance
func (s *Store) SetBalance(patronID, balance int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.patrons[patronID] = domain.Patron{ID: patronID, Balance: balance, UpdatedAt: s.now()}
}

// Balance returns the stored balance and whether the patron exists
func (s *Store) Balance(patronID int64) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.patrons[patronID]
	return p.Balance, ok
}

// Screening returns a copy of the stored screening
func (s *Store) Screening(id int64) (*domain.Screening, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.st.screenings[id]
	if !ok {
		return nil, false
	}
	sc.Grid = sc.Grid.Clone()
	return &sc, true
}

// Venue returns a copy of the stored venue
func (s *Store) Venue(id int64) (*domain.Venue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.st.venues[id]
	if !ok {
		return nil, false
	}
	return &v, true
}

// AllBookings returns every ledger row ordered by id
func (s *Store) AllBookings() []domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Booking, 0, len(s.st.bookings))
	for _, b := range s.st.bookings {
		out = append(out, b)
	}
	sortBookingsByID(out)
	return out
}

type txKey struct{}

// TxManager runs transactions against the store. A failed function leaves no trace;
// retryable errors re-run the function like the real manager does.
type TxManager struct {
	s           *Store
	maxAttempts int

	mu       sync.Mutex
	attempts int
	commits  int
}

func (s *Store) TxManager() *TxManager {
	return &TxManager{s: s, maxAttempts: 3}
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// Attempts counts function runs, Commits counts successful ones
func (m *TxManager) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

func (m *TxManager) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	txCtx := context.WithValue(ctx, txKey{}, true)
	for attempt := 1; ; attempt++ {
		m.s.mu.Lock()
		snapshot := m.s.st.clone()
		m.s.mu.Unlock()

		m.mu.Lock()
		m.attempts++
		m.mu.Unlock()

		err := fn(txCtx)
		if err == nil {
			m.mu.Lock()
			m.commits++
			m.mu.Unlock()
			return nil
		}

		m.s.mu.Lock()
		m.s.st = snapshot
		m.s.mu.Unlock()

		if !txmanager.IsRetryable(err) || attempt >= m.maxAttempts {
			return err
		}
	}
}
