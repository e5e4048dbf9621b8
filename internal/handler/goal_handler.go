package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/reveste/reveste-backend/internal/domain"
	"github.com/reveste/reveste-backend/internal/middleware"
	"github.com/reveste/reveste-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalHandler handles savings-goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount,omitempty"`
	Progress      int32  `json:"progress,omitempty"`
	Timeframe     string `json:"timeframe,omitempty"`
}

// UpdateGoalRequest represents the update goal request body; absent fields
// are left unchanged.
type UpdateGoalRequest struct {
	Name          *string `json:"name,omitempty"`
	TargetAmount  *string `json:"targetAmount,omitempty"`
	CurrentAmount *string `json:"currentAmount,omitempty"`
	Progress      *int32  `json:"progress,omitempty"`
	Timeframe     *string `json:"timeframe,omitempty"`
}

// GoalResponse represents a goal in API responses
type GoalResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	Progress      int32  `json:"progress"`
	Timeframe     string `json:"timeframe"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// GetGoals handles GET /api/v1/goals
func (h *GoalHandler) GetGoals(c echo.Context) error {
	userID := middleware.GetUserID(c)

	goals, err := h.goalService.FetchAll(c.Request().Context(), userID)
	if err != nil {
		var exhausted *domain.RetryExhaustedError
		if errors.As(err, &exhausted) {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("Goal listing exhausted retries")
			return NewUnavailableError(c, "Could not load goals. Check your connection and try again.")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get goals")
		return NewInternalError(c, "Failed to get goals")
	}

	responses := make([]GoalResponse, len(goals))
	for i, goal := range goals {
		responses[i] = toGoalResponse(goal)
	}
	return c.JSON(http.StatusOK, responses)
}

// CreateGoal handles POST /api/v1/goals
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Session required")
	}

	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	targetAmount, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return NewValidationError(c, "Invalid target amount", []ValidationError{
			{Field: "targetAmount", Message: "Must be a valid decimal number"},
		})
	}
	currentAmount := decimal.Zero
	if req.CurrentAmount != "" {
		currentAmount, err = decimal.NewFromString(req.CurrentAmount)
		if err != nil {
			return NewValidationError(c, "Invalid current amount", []ValidationError{
				{Field: "currentAmount", Message: "Must be a valid decimal number"},
			})
		}
	}

	goal, err := h.goalService.Create(c.Request().Context(), userID, service.CreateGoalInput{
		Name:          req.Name,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		Progress:      req.Progress,
		Timeframe:     req.Timeframe,
	})
	if err != nil {
		if validationProblem := goalValidationProblem(c, err); validationProblem != nil {
			return validationProblem
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to create goal")
		return NewInternalError(c, "Failed to create goal")
	}

	log.Info().Str("user_id", userID.String()).Str("goal_id", goal.ID.String()).Str("name", goal.Name).Msg("Goal created")
	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// UpdateGoal handles PUT /api/v1/goals/:id
func (h *GoalHandler) UpdateGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Session required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	var req UpdateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	patch := &domain.GoalPatch{
		Name:      req.Name,
		Progress:  req.Progress,
		Timeframe: req.Timeframe,
	}
	if req.TargetAmount != nil {
		target, err := decimal.NewFromString(*req.TargetAmount)
		if err != nil {
			return NewValidationError(c, "Invalid target amount", []ValidationError{
				{Field: "targetAmount", Message: "Must be a valid decimal number"},
			})
		}
		patch.TargetAmount = &target
	}
	if req.CurrentAmount != nil {
		current, err := decimal.NewFromString(*req.CurrentAmount)
		if err != nil {
			return NewValidationError(c, "Invalid current amount", []ValidationError{
				{Field: "currentAmount", Message: "Must be a valid decimal number"},
			})
		}
		patch.CurrentAmount = &current
	}

	goal, err := h.goalService.Update(c.Request().Context(), userID, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			return NewNotFoundError(c, "Goal not found")
		}
		if validationProblem := goalValidationProblem(c, err); validationProblem != nil {
			return validationProblem
		}
		log.Error().Err(err).Str("user_id", userID.String()).Str("goal_id", id.String()).Msg("Failed to update goal")
		return NewInternalError(c, "Failed to update goal")
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// DeleteGoal handles DELETE /api/v1/goals/:id
func (h *GoalHandler) DeleteGoal(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Session required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid goal ID", nil)
	}

	if err := h.goalService.Delete(c.Request().Context(), userID, id); err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Str("goal_id", id.String()).Msg("Failed to delete goal")
		return NewInternalError(c, "Failed to delete goal")
	}

	return c.NoContent(http.StatusNoContent)
}

func goalValidationProblem(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrNameRequired) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	}
	if errors.Is(err, domain.ErrNameTooLong) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		})
	}
	if errors.Is(err, domain.ErrAmountNotPositive) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "targetAmount", Message: "Target amount must be positive"},
		})
	}
	return nil
}

func toGoalResponse(goal *domain.Goal) GoalResponse {
	return GoalResponse{
		ID:            goal.ID.String(),
		UserID:        goal.UserID.String(),
		Name:          goal.Name,
		TargetAmount:  goal.TargetAmount.StringFixed(2),
		CurrentAmount: goal.CurrentAmount.StringFixed(2),
		Progress:      goal.Progress,
		Timeframe:     goal.Timeframe,
		CreatedAt:     goal.CreatedAt.Format(timeFormat),
		UpdatedAt:     goal.UpdatedAt.Format(timeFormat),
	}
}
