package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/reveste/reveste-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes. Read routes resolve the session
// when present but serve empty/default results without one; write and
// account routes require a live session.
func RegisterRoutes(
	e *echo.Echo,
	sessionMiddleware *middleware.SessionMiddleware,
	loginLimiter *middleware.LoginRateLimiter,
	authHandler *AuthHandler,
	profileHandler *ProfileHandler,
	goalHandler *GoalHandler,
	impulseHandler *ImpulseHandler,
	dashboardHandler *DashboardHandler,
	investmentHandler *InvestmentHandler,
	communityHandler *CommunityHandler,
) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login, middleware.LoginRateLimitMiddleware(loginLimiter))
	auth.POST("/logout", authHandler.Logout, sessionMiddleware.Authenticate())
	auth.DELETE("/account", authHandler.DeleteAccount, sessionMiddleware.Authenticate())

	// Profile routes (protected)
	profile := api.Group("/profile")
	profile.Use(sessionMiddleware.Authenticate())
	profile.GET("", profileHandler.GetProfile)

	// Goal routes: listing tolerates a missing session, writes do not
	goals := api.Group("/goals")
	goals.GET("", goalHandler.GetGoals, sessionMiddleware.AuthenticateOptional())
	goals.POST("", goalHandler.CreateGoal, sessionMiddleware.Authenticate())
	goals.PUT("/:id", goalHandler.UpdateGoal, sessionMiddleware.Authenticate())
	goals.DELETE("/:id", goalHandler.DeleteGoal, sessionMiddleware.Authenticate())

	// Impulse routes (protected)
	impulses := api.Group("/impulses")
	impulses.Use(sessionMiddleware.Authenticate())
	impulses.POST("", impulseHandler.RegisterImpulse)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("", dashboardHandler.GetDashboard, sessionMiddleware.AuthenticateOptional())

	// Static education content (public)
	api.GET("/investments", investmentHandler.GetCatalog)
	api.GET("/community/resources", communityHandler.GetResources)
}
