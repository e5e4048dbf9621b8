package service

import (
	"context"
	"errors"
	"net/mail"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/reveste/reveste-backend/internal/domain"
	"github.com/reveste/reveste-backend/internal/session"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles credential sign-in, sign-out and account deletion.
// Auth errors are a closed set: ErrInvalidEmail, ErrUserNotFound,
// ErrWrongPassword; the service propagates them untranslated and leaves
// user-facing wording to the handler layer.
type AuthService struct {
	userRepo    domain.UserRepository
	goalRepo    domain.GoalRepository
	impulseRepo domain.ImpulseRepository
	sessions    *session.Store
	jwtSecret   []byte
	tokenTTL    time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo domain.UserRepository,
	goalRepo domain.GoalRepository,
	impulseRepo domain.ImpulseRepository,
	sessions *session.Store,
	jwtSecret []byte,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		goalRepo:    goalRepo,
		impulseRepo: impulseRepo,
		sessions:    sessions,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// LoginResult carries the authenticated user and their session token
type LoginResult struct {
	User  *domain.User
	Token string
}

// Login verifies a credential pair, records a session and issues a signed
// token carrying the session ID and user identifier.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.ErrInvalidEmail
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrWrongPassword
	}

	sessionID := uuid.NewString()
	now := time.Now()
	s.sessions.Put(session.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Email:     user.Email,
		CreatedAt: now,
	})

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		s.sessions.Delete(sessionID)
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("User logged in")
	return &LoginResult{User: user, Token: token}, nil
}

// Logout removes the session from the cache. The token itself is not
// revocable; it simply stops resolving to a session.
func (s *AuthService) Logout(sessionID string) {
	s.sessions.Delete(sessionID)
}

// DeleteAccount removes every goal and impulse owned by userID, then
// deletes the authentication record for email and clears the user's
// sessions.
//
// The data deletes are issued concurrently and awaited together. They are
// not retried and not transactional: a partial failure leaves orphaned
// records behind with no rollback. The auth deletion is attempted even
// when data deletion failed, matching the long-standing behavior callers
// depend on; any failed phase is reported through an
// AccountDeletionPartialError telling the caller to retry manually.
func (s *AuthService) DeleteAccount(ctx context.Context, email string, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.ErrSessionMissing
	}

	var failures []domain.PhaseFailure

	goals, err := s.goalRepo.GetAllByUser(ctx, userID)
	if err != nil {
		failures = append(failures, domain.PhaseFailure{Phase: domain.DeletePhaseGoals, Err: err})
	}
	impulses, err := s.impulseRepo.GetAllByUser(ctx, userID)
	if err != nil {
		failures = append(failures, domain.PhaseFailure{Phase: domain.DeletePhaseImpulses, Err: err})
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		goalErr    error
		impulseErr error
	)
	for _, goal := range goals {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if err := s.goalRepo.Delete(ctx, userID, id); err != nil {
				mu.Lock()
				goalErr = err
				mu.Unlock()
			}
		}(goal.ID)
	}
	for _, impulse := range impulses {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if err := s.impulseRepo.Delete(ctx, userID, id); err != nil {
				mu.Lock()
				impulseErr = err
				mu.Unlock()
			}
		}(impulse.ID)
	}
	wg.Wait()

	if goalErr != nil {
		failures = append(failures, domain.PhaseFailure{Phase: domain.DeletePhaseGoals, Err: goalErr})
	}
	if impulseErr != nil {
		failures = append(failures, domain.PhaseFailure{Phase: domain.DeletePhaseImpulses, Err: impulseErr})
	}

	// Auth record goes last so a failed auth delete leaves an
	// authenticatable but empty account rather than orphaned data.
	if err := s.userRepo.DeleteByEmail(ctx, email); err != nil {
		failures = append(failures, domain.PhaseFailure{Phase: domain.DeletePhaseAuth, Err: err})
	}

	s.sessions.DeleteUser(userID)

	if len(failures) > 0 {
		partial := &domain.AccountDeletionPartialError{Failures: failures}
		log.Error().Err(partial).Str("user_id", userID.String()).Msg("Account deletion partially failed")
		return partial
	}

	log.Info().Str("user_id", userID.String()).Msg("Account deleted")
	return nil
}

// IsAuthError reports whether err belongs to the credential classification
// set handlers translate to user-facing messages.
func IsAuthError(err error) bool {
	return errors.Is(err, domain.ErrInvalidCredentials) ||
		errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrWrongPassword) ||
		errors.Is(err, domain.ErrInvalidEmail)
}
