package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents an authenticatable account. Email is the credential
// handle, ID is the identifier that scopes every goal and impulse.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRepository defines the interface for the authentication records
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	DeleteByEmail(ctx context.Context, email string) error
}
