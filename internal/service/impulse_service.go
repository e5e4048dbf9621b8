package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/reveste/reveste-backend/internal/domain"
	"github.com/reveste/reveste-backend/internal/retry"
	"github.com/shopspring/decimal"
)

// ImpulseService handles impulse registration and the derived dashboard
// metrics. Impulses are write-once: there is no update or delete operation.
type ImpulseService struct {
	impulseRepo domain.ImpulseRepository
	userRepo    domain.UserRepository
	readPolicy  retry.Policy
}

// NewImpulseService creates a new ImpulseService
func NewImpulseService(impulseRepo domain.ImpulseRepository, userRepo domain.UserRepository, readPolicy retry.Policy) *ImpulseService {
	return &ImpulseService{
		impulseRepo: impulseRepo,
		userRepo:    userRepo,
		readPolicy:  readPolicy,
	}
}

// RegisterImpulseInput holds the input for registering an impulse
type RegisterImpulseInput struct {
	Amount      decimal.Decimal
	BetType     domain.BetType
	IsRecurring bool
	Feeling     string
	Date        string
}

// Register persists a new impulse and returns it with its assigned
// identifier. Not retried; store failures surface immediately as a
// RemoteWriteError.
func (s *ImpulseService) Register(ctx context.Context, userID uuid.UUID, input RegisterImpulseInput) (*domain.Impulse, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrSessionMissing
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}
	if !domain.IsValidBetType(input.BetType) {
		return nil, domain.ErrInvalidBetType
	}

	impulse := &domain.Impulse{
		UserID:      userID,
		Amount:      input.Amount,
		BetType:     input.BetType,
		IsRecurring: input.IsRecurring,
		Feeling:     input.Feeling,
		Date:        input.Date,
	}

	created, err := s.impulseRepo.Create(ctx, impulse)
	if err != nil {
		return nil, &domain.RemoteWriteError{Op: "register impulse", Err: err}
	}
	return created, nil
}

// FetchDashboardData reads all of the user's impulses under the read retry
// policy, sums their amounts and derives the dashboard metrics. Nothing is
// persisted; every call recomputes from scratch. A missing session yields
// default metrics computed over a zero total.
func (s *ImpulseService) FetchDashboardData(ctx context.Context, userID uuid.UUID) (*domain.DashboardMetrics, error) {
	if userID == uuid.Nil {
		return domain.ComputeDashboardMetrics("", decimal.Zero), nil
	}

	return retry.Do(ctx, s.readPolicy, func(ctx context.Context) (*domain.DashboardMetrics, error) {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}

		impulses, err := s.impulseRepo.GetAllByUser(ctx, userID)
		if err != nil {
			return nil, err
		}

		total := decimal.Zero
		for _, impulse := range impulses {
			total = total.Add(impulse.Amount)
		}

		return domain.ComputeDashboardMetrics(user.Name, total), nil
	})
}
