package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/reveste/reveste-backend/internal/domain"
	"github.com/reveste/reveste-backend/internal/session"
	"github.com/reveste/reveste-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func setupAuthService(t *testing.T) (*AuthService, *testutil.MockUserRepository, *testutil.MockGoalRepository, *testutil.MockImpulseRepository, *session.Store) {
	t.Helper()
	userRepo := testutil.NewMockUserRepository()
	goalRepo := testutil.NewMockGoalRepository()
	impulseRepo := testutil.NewMockImpulseRepository()
	sessions := session.NewStore()
	authService := NewAuthService(userRepo, goalRepo, impulseRepo, sessions, []byte(testSecret), time.Hour)
	return authService, userRepo, goalRepo, impulseRepo, sessions
}

func addUserWithPassword(t *testing.T, userRepo *testutil.MockUserRepository, email, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{Email: email, Name: "Vitor", PasswordHash: string(hash)}
	userRepo.AddUser(user)
	return user
}

func TestLogin_Success(t *testing.T) {
	authService, userRepo, _, _, sessions := setupAuthService(t)
	user := addUserWithPassword(t, userRepo, "vitor@reveste.app", "sprintmobile")

	result, err := authService.Login(context.Background(), "vitor@reveste.app", "sprintmobile")
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
	require.NotEmpty(t, result.Token)

	// Token must carry the user ID and a session ID registered in the cache
	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)

	sess, ok := sessions.Get(claims.ID)
	require.True(t, ok)
	assert.Equal(t, user.ID, sess.UserID)
}

func TestLogin_InvalidEmailFormat(t *testing.T) {
	authService, _, _, _, _ := setupAuthService(t)

	_, err := authService.Login(context.Background(), "not-an-email", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	assert.True(t, IsAuthError(err))
}

func TestLogin_UnknownUser(t *testing.T) {
	authService, _, _, _, _ := setupAuthService(t)

	_, err := authService.Login(context.Background(), "nobody@reveste.app", "whatever")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.True(t, IsAuthError(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	authService, userRepo, _, _, sessions := setupAuthService(t)
	addUserWithPassword(t, userRepo, "vitor@reveste.app", "sprintmobile")

	_, err := authService.Login(context.Background(), "vitor@reveste.app", "wrong")
	assert.ErrorIs(t, err, domain.ErrWrongPassword)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, 0, sessions.Len())
}

func TestLogout_RemovesSession(t *testing.T) {
	authService, userRepo, _, _, sessions := setupAuthService(t)
	addUserWithPassword(t, userRepo, "vitor@reveste.app", "sprintmobile")

	result, err := authService.Login(context.Background(), "vitor@reveste.app", "sprintmobile")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(result.Token, claims, func(token *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)

	authService.Logout(claims.ID)
	assert.Equal(t, 0, sessions.Len())
}

func TestDeleteAccount_RemovesDataBeforeAuthRecord(t *testing.T) {
	authService, userRepo, goalRepo, impulseRepo, sessions := setupAuthService(t)
	user := addUserWithPassword(t, userRepo, "vitor@reveste.app", "sprintmobile")

	for i := 0; i < 3; i++ {
		goalRepo.AddGoal(&domain.Goal{UserID: user.ID, Name: "Meta", TargetAmount: decimal.NewFromInt(100)})
	}
	for i := 0; i < 2; i++ {
		impulseRepo.AddImpulse(&domain.Impulse{UserID: user.ID, Amount: decimal.NewFromInt(50), BetType: domain.BetTypeSports})
	}
	// Records of another user must survive the cascade
	otherGoal := &domain.Goal{UserID: uuid.New(), Name: "Outra meta"}
	goalRepo.AddGoal(otherGoal)

	sessions.Put(session.Session{ID: "s1", UserID: user.ID})

	// The auth delete must observe all data deletes already issued and settled
	var goalDeletesAtAuth, impulseDeletesAtAuth int
	userRepo.DeleteByEmailFn = func(ctx context.Context, email string) error {
		goalDeletesAtAuth = goalRepo.DeleteCalls
		impulseDeletesAtAuth = impulseRepo.DeleteCalls
		return nil
	}

	err := authService.DeleteAccount(context.Background(), user.Email, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, goalDeletesAtAuth, "all goal deletes settle before the auth delete")
	assert.Equal(t, 2, impulseDeletesAtAuth, "all impulse deletes settle before the auth delete")
	assert.Equal(t, 1, userRepo.DeleteCalls)

	goals, _ := goalRepo.GetAllByUser(context.Background(), user.ID)
	assert.Empty(t, goals)
	if _, ok := goalRepo.Goals[otherGoal.ID]; !ok {
		t.Error("Expected other user's goal to survive")
	}
	assert.Equal(t, 0, sessions.Len(), "sessions cleared after deletion")
}

func TestDeleteAccount_AuthDeleteStillAttemptedOnDataFailure(t *testing.T) {
	authService, userRepo, goalRepo, impulseRepo, _ := setupAuthService(t)
	user := addUserWithPassword(t, userRepo, "vitor@reveste.app", "sprintmobile")

	goalRepo.AddGoal(&domain.Goal{UserID: user.ID, Name: "Meta"})
	impulseRepo.AddImpulse(&domain.Impulse{UserID: user.ID, Amount: decimal.NewFromInt(50), BetType: domain.BetTypeSports})

	goalRepo.DeleteFn = func(ctx context.Context, userID, id uuid.UUID) error {
		return errors.New("delete failed")
	}

	err := authService.DeleteAccount(context.Background(), user.Email, user.ID)
	require.Error(t, err)

	// Current behavior: the auth record delete still runs after a data
	// failure, which can orphan the remaining records permanently.
	assert.Equal(t, 1, userRepo.DeleteCalls)

	var partial *domain.AccountDeletionPartialError
	require.ErrorAs(t, err, &partial)
	assert.True(t, partial.FailedPhase(domain.DeletePhaseGoals))
	assert.False(t, partial.FailedPhase(domain.DeletePhaseImpulses))
	assert.False(t, partial.FailedPhase(domain.DeletePhaseAuth))
}

func TestDeleteAccount_AuthFailureReported(t *testing.T) {
	authService, userRepo, goalRepo, _, _ := setupAuthService(t)
	user := addUserWithPassword(t, userRepo, "vitor@reveste.app", "sprintmobile")
	goalRepo.AddGoal(&domain.Goal{UserID: user.ID, Name: "Meta"})

	userRepo.DeleteByEmailFn = func(ctx context.Context, email string) error {
		return errors.New("auth service down")
	}

	err := authService.DeleteAccount(context.Background(), user.Email, user.ID)
	require.Error(t, err)

	var partial *domain.AccountDeletionPartialError
	require.ErrorAs(t, err, &partial)
	assert.True(t, partial.FailedPhase(domain.DeletePhaseAuth))
	assert.False(t, partial.FailedPhase(domain.DeletePhaseGoals))

	// Data was already removed; the account is empty but still authenticatable
	goals, _ := goalRepo.GetAllByUser(context.Background(), user.ID)
	assert.Empty(t, goals)
}

func TestDeleteAccount_ConcurrentDeletesAllIssued(t *testing.T) {
	authService, userRepo, goalRepo, impulseRepo, _ := setupAuthService(t)
	user := addUserWithPassword(t, userRepo, "vitor@reveste.app", "sprintmobile")

	const n = 20
	for i := 0; i < n; i++ {
		goalRepo.AddGoal(&domain.Goal{UserID: user.ID, Name: "Meta"})
		impulseRepo.AddImpulse(&domain.Impulse{UserID: user.ID, Amount: decimal.NewFromInt(10), BetType: domain.BetTypeOther})
	}

	var inFlight, maxInFlight int64
	goalRepo.DeleteFn = func(ctx context.Context, userID, id uuid.UUID) error {
		cur := atomic.AddInt64(&inFlight, 1)
		for {
			prev := atomic.LoadInt64(&maxInFlight)
			if cur <= prev || atomic.CompareAndSwapInt64(&maxInFlight, prev, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return nil
	}

	err := authService.DeleteAccount(context.Background(), user.Email, user.ID)
	require.NoError(t, err)
	assert.Equal(t, n, goalRepo.DeleteCalls)
	assert.Equal(t, n, impulseRepo.DeleteCalls)
	assert.Greater(t, maxInFlight, int64(1), "deletes are issued concurrently, not serially")
}

func TestDeleteAccount_NoSession(t *testing.T) {
	authService, _, _, _, _ := setupAuthService(t)
	err := authService.DeleteAccount(context.Background(), "vitor@reveste.app", uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrSessionMissing)
}
