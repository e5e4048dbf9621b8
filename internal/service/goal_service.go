package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/reveste/reveste-backend/internal/domain"
	"github.com/reveste/reveste-backend/internal/retry"
	"github.com/shopspring/decimal"
)

// GoalService handles savings-goal business logic. Reads go through the
// read retry policy; writes are issued exactly once.
type GoalService struct {
	goalRepo   domain.GoalRepository
	readPolicy retry.Policy
}

// NewGoalService creates a new GoalService
func NewGoalService(goalRepo domain.GoalRepository, readPolicy retry.Policy) *GoalService {
	return &GoalService{goalRepo: goalRepo, readPolicy: readPolicy}
}

// CreateGoalInput holds the input for creating a goal. Progress is taken
// as supplied; the service never recomputes it from the amounts.
type CreateGoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Progress      int32
	Timeframe     string
}

// FetchAll retrieves all goals owned by a user, retried under the read
// policy. A missing session yields an empty slice, not an error, as does
// a user with zero stored goals.
func (s *GoalService) FetchAll(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	if userID == uuid.Nil {
		return []*domain.Goal{}, nil
	}
	return retry.Do(ctx, s.readPolicy, func(ctx context.Context) ([]*domain.Goal, error) {
		return s.goalRepo.GetAllByUser(ctx, userID)
	})
}

// Create persists a new goal and returns it with its assigned identifier.
// Not retried; any store failure surfaces immediately as a RemoteWriteError.
func (s *GoalService) Create(ctx context.Context, userID uuid.UUID, input CreateGoalInput) (*domain.Goal, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrSessionMissing
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxGoalNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.TargetAmount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}

	goal := &domain.Goal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: input.CurrentAmount,
		Progress:      input.Progress,
		Timeframe:     input.Timeframe,
	}

	created, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, &domain.RemoteWriteError{Op: "create goal", Err: err}
	}
	return created, nil
}

// Update merges the supplied patch fields into an existing goal. Not
// retried. A nonexistent identifier surfaces as a RemoteWriteError wrapping
// domain.ErrGoalNotFound.
func (s *GoalService) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, patch *domain.GoalPatch) (*domain.Goal, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrSessionMissing
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.ErrNameRequired
		}
		if len(name) > domain.MaxGoalNameLength {
			return nil, domain.ErrNameTooLong
		}
		patch.Name = &name
	}
	if patch.TargetAmount != nil && !patch.TargetAmount.IsPositive() {
		return nil, domain.ErrAmountNotPositive
	}

	updated, err := s.goalRepo.Update(ctx, userID, id, patch)
	if err != nil {
		return nil, &domain.RemoteWriteError{Op: "update goal", Err: err}
	}
	return updated, nil
}

// Delete removes a goal. Not retried. Whether deleting a nonexistent id
// succeeds silently or fails follows the backing store; callers must not
// assume either.
func (s *GoalService) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.ErrSessionMissing
	}
	if err := s.goalRepo.Delete(ctx, userID, id); err != nil {
		return &domain.RemoteWriteError{Op: "delete goal", Err: err}
	}
	return nil
}
