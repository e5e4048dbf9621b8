package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal represents a user-defined savings target
type Goal struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"userId"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Progress      int32           `json:"progress"`
	Timeframe     string          `json:"timeframe"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// GoalPatch carries a partial update; nil fields are left unchanged.
// Progress is whatever the caller supplies, the core never recomputes it.
type GoalPatch struct {
	Name          *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	Progress      *int32
	Timeframe     *string
}

// IsEmpty reports whether the patch carries no fields
func (p *GoalPatch) IsEmpty() bool {
	return p.Name == nil && p.TargetAmount == nil && p.CurrentAmount == nil &&
		p.Progress == nil && p.Timeframe == nil
}

// GoalRepository defines the interface for goal persistence operations
type GoalRepository interface {
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	Create(ctx context.Context, goal *Goal) (*Goal, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, patch *GoalPatch) (*Goal, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}
