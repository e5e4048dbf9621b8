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

// ImpulseHandler handles impulse registration HTTP requests
type ImpulseHandler struct {
	impulseService *service.ImpulseService
}

// NewImpulseHandler creates a new ImpulseHandler
func NewImpulseHandler(impulseService *service.ImpulseService) *ImpulseHandler {
	return &ImpulseHandler{impulseService: impulseService}
}

// RegisterImpulseRequest represents the impulse registration request body
type RegisterImpulseRequest struct {
	Amount      string `json:"amount"`
	BetType     string `json:"betType"`
	IsRecurring bool   `json:"isRecurring"`
	Feeling     string `json:"feeling,omitempty"`
	Date        string `json:"date"`
}

// ImpulseResponse represents an impulse in API responses
type ImpulseResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Amount      string `json:"amount"`
	BetType     string `json:"betType"`
	IsRecurring bool   `json:"isRecurring"`
	Feeling     string `json:"feeling"`
	Date        string `json:"date"`
	CreatedAt   string `json:"createdAt"`
}

// RegisterImpulse handles POST /api/v1/impulses
func (h *ImpulseHandler) RegisterImpulse(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Session required")
	}

	var req RegisterImpulseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	impulse, err := h.impulseService.Register(c.Request().Context(), userID, service.RegisterImpulseInput{
		Amount:      amount,
		BetType:     domain.BetType(req.BetType),
		IsRecurring: req.IsRecurring,
		Feeling:     req.Feeling,
		Date:        req.Date,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAmountNotPositive) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "amount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrInvalidBetType) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "betType", Message: "Bet type must be one of: Esportes, Cassino Online, Loteria, Apostas Esportivas, Poker, Outros"},
			})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to register impulse")
		return NewInternalError(c, "Failed to register impulse")
	}

	log.Info().Str("user_id", userID.String()).Str("impulse_id", impulse.ID.String()).Str("bet_type", string(impulse.BetType)).Msg("Impulse registered")
	return c.JSON(http.StatusCreated, toImpulseResponse(impulse))
}

func toImpulseResponse(impulse *domain.Impulse) ImpulseResponse {
	return ImpulseResponse{
		ID:          impulse.ID.String(),
		UserID:      impulse.UserID.String(),
		Amount:      impulse.Amount.StringFixed(2),
		BetType:     string(impulse.BetType),
		IsRecurring: impulse.IsRecurring,
		Feeling:     impulse.Feeling,
		Date:        impulse.Date,
		CreatedAt:   impulse.CreatedAt.Format(timeFormat),
	}
}
