package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reveste/reveste-backend/internal/domain"
)

// MockGoalRepository is a mock implementation of domain.GoalRepository
type MockGoalRepository struct {
	mu    sync.Mutex
	Goals map[uuid.UUID]*domain.Goal
	order []uuid.UUID

	GetAllByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error)
	CreateFn       func(ctx context.Context, goal *domain.Goal) (*domain.Goal, error)
	UpdateFn       func(ctx context.Context, userID, id uuid.UUID, patch *domain.GoalPatch) (*domain.Goal, error)
	DeleteFn       func(ctx context.Context, userID, id uuid.UUID) error

	GetAllCalls int
	DeleteCalls int
}

// NewMockGoalRepository creates a new MockGoalRepository
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{Goals: make(map[uuid.UUID]*domain.Goal)}
}

// AddGoal adds a goal to the mock repository (helper for tests)
func (m *MockGoalRepository) AddGoal(goal *domain.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	m.Goals[goal.ID] = goal
	m.order = append(m.order, goal.ID)
}

// GetAllByUser retrieves all goals owned by a user
func (m *MockGoalRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Goal, error) {
	m.mu.Lock()
	m.GetAllCalls++
	m.mu.Unlock()
	if m.GetAllByUserFn != nil {
		return m.GetAllByUserFn(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	goals := []*domain.Goal{}
	for _, id := range m.order {
		if goal, ok := m.Goals[id]; ok && goal.UserID == userID {
			goals = append(goals, goal)
		}
	}
	return goals, nil
}

// Create persists a new goal
func (m *MockGoalRepository) Create(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, goal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	goal.ID = uuid.New()
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	m.Goals[goal.ID] = goal
	m.order = append(m.order, goal.ID)
	return goal, nil
}

// Update merges patch fields into an existing goal
func (m *MockGoalRepository) Update(ctx context.Context, userID, id uuid.UUID, patch *domain.GoalPatch) (*domain.Goal, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, userID, id, patch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	goal, ok := m.Goals[id]
	if !ok || goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	if patch.Name != nil {
		goal.Name = *patch.Name
	}
	if patch.TargetAmount != nil {
		goal.TargetAmount = *patch.TargetAmount
	}
	if patch.CurrentAmount != nil {
		goal.CurrentAmount = *patch.CurrentAmount
	}
	if patch.Progress != nil {
		goal.Progress = *patch.Progress
	}
	if patch.Timeframe != nil {
		goal.Timeframe = *patch.Timeframe
	}
	goal.UpdatedAt = time.Now()
	return goal, nil
}

// Delete removes a goal; deleting an unknown id is a silent no-op
func (m *MockGoalRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	m.DeleteCalls++
	m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if goal, ok := m.Goals[id]; ok && goal.UserID == userID {
		delete(m.Goals, id)
	}
	return nil
}

// MockImpulseRepository is a mock implementation of domain.ImpulseRepository
type MockImpulseRepository struct {
	mu       sync.Mutex
	Impulses map[uuid.UUID]*domain.Impulse
	order    []uuid.UUID

	GetAllByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Impulse, error)
	CreateFn       func(ctx context.Context, impulse *domain.Impulse) (*domain.Impulse, error)
	DeleteFn       func(ctx context.Context, userID, id uuid.UUID) error

	CreateCalls int
	DeleteCalls int
}

// NewMockImpulseRepository creates a new MockImpulseRepository
func NewMockImpulseRepository() *MockImpulseRepository {
	return &MockImpulseRepository{Impulses: make(map[uuid.UUID]*domain.Impulse)}
}

// AddImpulse adds an impulse to the mock repository (helper for tests)
func (m *MockImpulseRepository) AddImpulse(impulse *domain.Impulse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if impulse.ID == uuid.Nil {
		impulse.ID = uuid.New()
	}
	m.Impulses[impulse.ID] = impulse
	m.order = append(m.order, impulse.ID)
}

// GetAllByUser retrieves all impulses owned by a user
func (m *MockImpulseRepository) GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Impulse, error) {
	if m.GetAllByUserFn != nil {
		return m.GetAllByUserFn(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	impulses := []*domain.Impulse{}
	for _, id := range m.order {
		if impulse, ok := m.Impulses[id]; ok && impulse.UserID == userID {
			impulses = append(impulses, impulse)
		}
	}
	return impulses, nil
}

// Create persists a new impulse
func (m *MockImpulseRepository) Create(ctx context.Context, impulse *domain.Impulse) (*domain.Impulse, error) {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, impulse)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	impulse.ID = uuid.New()
	impulse.CreatedAt = time.Now()
	m.Impulses[impulse.ID] = impulse
	m.order = append(m.order, impulse.ID)
	return impulse, nil
}

// Delete removes an impulse
func (m *MockImpulseRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	m.DeleteCalls++
	m.mu.Unlock()
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, userID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if impulse, ok := m.Impulses[id]; ok && impulse.UserID == userID {
		delete(m.Impulses, id)
	}
	return nil
}

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	mu      sync.Mutex
	Users   map[uuid.UUID]*domain.User
	ByEmail map[string]*domain.User

	GetByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	DeleteByEmailFn func(ctx context.Context, email string) error

	DeleteCalls int
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:   make(map[uuid.UUID]*domain.User),
		ByEmail: make(map[string]*domain.User),
	}
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.Users[user.ID] = user
	m.ByEmail[user.Email] = user
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.Users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.ByEmail[email]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// Create persists a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.ID] = user
	m.ByEmail[user.Email] = user
	return user, nil
}

// DeleteByEmail removes the authentication record for an email
func (m *MockUserRepository) DeleteByEmail(ctx context.Context, email string) error {
	m.mu.Lock()
	m.DeleteCalls++
	m.mu.Unlock()
	if m.DeleteByEmailFn != nil {
		return m.DeleteByEmailFn(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.ByEmail[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(m.ByEmail, email)
	delete(m.Users, user.ID)
	return nil
}
