package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/reveste/reveste-backend/internal/domain"
)

// ProfileService handles profile-related business logic
type ProfileService struct {
	userRepo domain.UserRepository
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo domain.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// GetProfile retrieves a user's profile by ID
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrSessionMissing
	}
	return s.userRepo.GetByID(ctx, userID)
}
