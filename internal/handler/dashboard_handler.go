package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/reveste/reveste-backend/internal/domain"
	"github.com/reveste/reveste-backend/internal/middleware"
	"github.com/reveste/reveste-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	impulseService *service.ImpulseService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(impulseService *service.ImpulseService) *DashboardHandler {
	return &DashboardHandler{impulseService: impulseService}
}

// InvestmentPotentialResponse is the investment potential block of the
// dashboard response
type InvestmentPotentialResponse struct {
	Spent              string `json:"spent"`
	ConservativeReturn string `json:"conservativeReturn"`
	EquityReturn       string `json:"equityReturn"`
}

// DashboardResponse represents the derived dashboard metrics
type DashboardResponse struct {
	UserName            string                      `json:"userName"`
	MoneySaved          string                      `json:"moneySaved"`
	DailySavings        string                      `json:"dailySavings"`
	DaysWithoutBetting  int                         `json:"daysWithoutBetting"`
	IntelligenceScore   int                         `json:"intelligenceScore"`
	InvestmentPotential InvestmentPotentialResponse `json:"investmentPotential"`
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	userID := middleware.GetUserID(c)

	metrics, err := h.impulseService.FetchDashboardData(c.Request().Context(), userID)
	if err != nil {
		var exhausted *domain.RetryExhaustedError
		if errors.As(err, &exhausted) {
			log.Warn().Err(err).Str("user_id", userID.String()).Msg("Dashboard aggregation exhausted retries")
			return NewUnavailableError(c, "Could not load dashboard. Check your connection and try again.")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to get dashboard")
		return NewInternalError(c, "Failed to get dashboard")
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		UserName:           metrics.UserName,
		MoneySaved:         metrics.MoneySaved.StringFixed(2),
		DailySavings:       metrics.DailySavings.StringFixed(2),
		DaysWithoutBetting: metrics.DaysWithoutBetting,
		IntelligenceScore:  metrics.IntelligenceScore,
		InvestmentPotential: InvestmentPotentialResponse{
			Spent:              metrics.InvestmentPotential.Spent.StringFixed(2),
			ConservativeReturn: metrics.InvestmentPotential.ConservativeReturn.StringFixed(2),
			EquityReturn:       metrics.InvestmentPotential.EquityReturn.StringFixed(2),
		},
	})
}
