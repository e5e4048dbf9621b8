package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/reveste/reveste-backend/internal/domain"
	"github.com/reveste/reveste-backend/internal/service"
	"github.com/reveste/reveste-backend/internal/testutil"
	"github.com/shopspring/decimal"
)

func TestGetDashboard_Success(t *testing.T) {
	e := echo.New()
	impulseRepo := testutil.NewMockImpulseRepository()
	userRepo := testutil.NewMockUserRepository()
	dashboardHandler := NewDashboardHandler(service.NewImpulseService(impulseRepo, userRepo, fastReadPolicy))

	user := &domain.User{Email: "vitor@reveste.app", Name: "Vitor"}
	userRepo.AddUser(user)
	impulseRepo.AddImpulse(&domain.Impulse{UserID: user.ID, Amount: decimal.RequireFromString("1000.00"), BetType: domain.BetTypeSports})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupSessionContext(c, user.ID, "s1", user.Email)

	if err := dashboardHandler.GetDashboard(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.UserName != "Vitor" {
		t.Errorf("Expected user name 'Vitor', got %s", response.UserName)
	}
	if response.MoneySaved != "2000.00" {
		t.Errorf("Expected money saved '2000.00', got %s", response.MoneySaved)
	}
	if response.DailySavings != "66.67" {
		t.Errorf("Expected daily savings '66.67', got %s", response.DailySavings)
	}
	if response.DaysWithoutBetting != 30 {
		t.Errorf("Expected 30 days without betting, got %d", response.DaysWithoutBetting)
	}
	if response.IntelligenceScore != 75 {
		t.Errorf("Expected intelligence score 75, got %d", response.IntelligenceScore)
	}
	if response.InvestmentPotential.Spent != "1000.00" {
		t.Errorf("Expected spent '1000.00', got %s", response.InvestmentPotential.Spent)
	}
	if response.InvestmentPotential.ConservativeReturn != "1200.00" {
		t.Errorf("Expected conservative return '1200.00', got %s", response.InvestmentPotential.ConservativeReturn)
	}
	if response.InvestmentPotential.EquityReturn != "1500.00" {
		t.Errorf("Expected equity return '1500.00', got %s", response.InvestmentPotential.EquityReturn)
	}
}

func TestGetDashboard_DefaultsWithoutSession(t *testing.T) {
	e := echo.New()
	impulseRepo := testutil.NewMockImpulseRepository()
	userRepo := testutil.NewMockUserRepository()
	dashboardHandler := NewDashboardHandler(service.NewImpulseService(impulseRepo, userRepo, fastReadPolicy))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := dashboardHandler.GetDashboard(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.MoneySaved != "0.00" {
		t.Errorf("Expected zero money saved without session, got %s", response.MoneySaved)
	}
}
