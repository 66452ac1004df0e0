package patrons

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
	patronRepo "github.com/m04kA/SMC-ShowtimeService/internal/infra/storage/patron"
	"github.com/m04kA/SMC-ShowtimeService/internal/service/patrons/models"
	"github.com/m04kA/SMC-ShowtimeService/pkg/ptr"
)

// Service exposes patron wallets. Balances are debited by bookings and credited by refunds
// and top-ups; this service only reads them and applies top-ups.
type Service struct {
	patronRepo PatronRepository
	logger     Logger
}

// NewService creates the patrons service
func NewService(patronRepo PatronRepository, logger Logger) *Service {
	return &Service{
		patronRepo: patronRepo,
		logger:     logger,
	}
}

// GetBalance returns the balance of a patron the session may access
func (s *Service) GetBalance(ctx context.Context, patronID int64, session domain.Session) (*models.BalanceResponse, error) {
	if patronID <= 0 {
		return nil, fmt.Errorf("%w: patron id must be positive", ErrInvalidInput)
	}
	if !session.CanAccessPatron(patronID) {
		s.logger.Warn("GetBalance: access denied for patron=%d to balance of patron=%d", session.PatronID, patronID)
		return nil, ErrAccessDenied
	}

	patron, err := s.patronRepo.GetByID(ctx, patronID)
	if err != nil {
		if errors.Is(err, patronRepo.ErrPatronNotFound) {
			s.logger.Warn("GetBalance: patron id=%d not found", patronID)
			return nil, ErrPatronNotFound
		}
		s.logger.Error("GetBalance: repository error for patron id=%d: %v", patronID, err)
		return nil, repositoryError("GetBalance", err)
	}

	return &models.BalanceResponse{
		PatronID:  patron.ID,
		Balance:   patron.Balance,
		UpdatedAt: ptr.Ptr(patron.UpdatedAt),
	}, nil
}

// TopUp credits a positive amount, creating the wallet on first use
func (s *Service) TopUp(ctx context.Context, req *models.TopUpRequest) (*models.BalanceResponse, error) {
	s.logger.Info("TopUp: patron=%d amount=%d", req.PatronID, req.Amount)

	if req.PatronID <= 0 {
		return nil, fmt.Errorf("%w: patron id must be positive", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	balance, err := s.patronRepo.TopUp(ctx, req.PatronID, req.Amount)
	if err != nil {
		s.logger.Error("TopUp: repository error for patron id=%d: %v", req.PatronID, err)
		return nil, repositoryError("TopUp", err)
	}

	s.logger.Info("TopUp: patron=%d balance is now %d", req.PatronID, balance)
	return &models.BalanceResponse{PatronID: req.PatronID, Balance: balance}, nil
}
