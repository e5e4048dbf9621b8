package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/reveste/reveste-backend/internal/domain"
)

// ImpulseRepository implements domain.ImpulseRepository using PostgreSQL
type ImpulseRepository struct {
	pool *pgxpool.Pool
}

// NewImpulseRepository creates a new ImpulseRepository
func NewImpulseRepository(pool *pgxpool.Pool) *ImpulseRepository {
	return &ImpulseRepository{pool: pool}
}

const impulseColumns = `id, user_id, amount, bet_type, is_recurring, feeling, date, created_at`

// GetAllByUser retrieves all impulses owned by a user in storage order
func (r *ImpulseRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Impulse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+impulseColumns+` FROM impulses WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	impulses := []*domain.Impulse{}
	for rows.Next() {
		impulse, err := scanImpulse(rows)
		if err != nil {
			return nil, err
		}
		impulses = append(impulses, impulse)
	}
	return impulses, rows.Err()
}

// Create persists a new impulse and returns it with its assigned identifier
func (r *ImpulseRepository) Create(ctx context.Context, impulse *domain.Impulse) (*domain.Impulse, error) {
	amount, err := decimalToPgNumeric(impulse.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx,
		`INSERT INTO impulses (user_id, amount, bet_type, is_recurring, feeling, date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+impulseColumns,
		impulse.UserID, amount, string(impulse.BetType), impulse.IsRecurring,
		impulse.Feeling, impulse.Date)
	return scanImpulse(row)
}

// Delete removes an impulse. Only the account deletion cascade calls this.
func (r *ImpulseRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM impulses WHERE user_id = $1 AND id = $2`, userID, id)
	return err
}

func scanImpulse(row pgx.Row) (*domain.Impulse, error) {
	var (
		impulse domain.Impulse
		amount  pgtype.Numeric
		betType string
	)
	err := row.Scan(&impulse.ID, &impulse.UserID, &amount, &betType,
		&impulse.IsRecurring, &impulse.Feeling, &impulse.Date, &impulse.CreatedAt)
	if err != nil {
		return nil, err
	}
	impulse.Amount = pgNumericToDecimal(amount)
	impulse.BetType = domain.BetType(betType)
	return &impulse, nil
}
