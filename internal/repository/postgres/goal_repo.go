package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reveste/reveste-backend/internal/domain"
)

// GoalRepository implements domain.GoalRepository using PostgreSQL
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `id, user_id, name, target_amount, current_amount, progress, timeframe, created_at, updated_at`

// GetAllByUser retrieves all goals owned by a user in storage order
func (r *GoalRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []*domain.Goal{}
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Create persists a new goal and returns it with its assigned identifier
func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	target, err := decimalToPgNumeric(goal.TargetAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid target amount: %w", err)
	}
	current, err := decimalToPgNumeric(goal.CurrentAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid current amount: %w", err)
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO goals (user_id, name, target_amount, current_amount, progress, timeframe)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+goalColumns,
		goal.UserID, goal.Name, target, current, goal.Progress, goal.Timeframe)
	return scanGoal(row)
}

// Update merges the supplied patch fields into the stored goal
func (r *GoalRepository) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, patch *domain.GoalPatch) (*domain.Goal, error) {
	set := "updated_at = now()"
	args := []any{userID, id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		set += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if patch.Name != nil {
		appendSet("name", *patch.Name)
	}
	if patch.TargetAmount != nil {
		target, err := decimalToPgNumeric(*patch.TargetAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid target amount: %w", err)
		}
		appendSet("target_amount", target)
	}
	if patch.CurrentAmount != nil {
		current, err := decimalToPgNumeric(*patch.CurrentAmount)
		if err != nil {
			return nil, fmt.Errorf("invalid current amount: %w", err)
		}
		appendSet("current_amount", current)
	}
	if patch.Progress != nil {
		appendSet("progress", *patch.Progress)
	}
	if patch.Timeframe != nil {
		appendSet("timeframe", *patch.Timeframe)
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE goals SET `+set+` WHERE user_id = $1 AND id = $2 RETURNING `+goalColumns,
		args...)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, err
	}
	return goal, nil
}

// Delete removes a goal. Deleting an id that does not exist is a no-op,
// matching the backing store's delete semantics.
func (r *GoalRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE user_id = $1 AND id = $2`, userID, id)
	return err
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		goal    domain.Goal
		target  pgtype.Numeric
		current pgtype.Numeric
	)
	err := row.Scan(&goal.ID, &goal.UserID, &goal.Name, &target, &current,
		&goal.Progress, &goal.Timeframe, &goal.CreatedAt, &goal.UpdatedAt)
	if err != nil {
		return nil, err
	}
	goal.TargetAmount = pgNumericToDecimal(target)
	goal.CurrentAmount = pgNumericToDecimal(current)
	return &goal, nil
}
