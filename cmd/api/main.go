package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/reveste/reveste-backend/internal/config"
	"github.com/reveste/reveste-backend/internal/domain"
	"github.com/reveste/reveste-backend/internal/handler"
	"github.com/reveste/reveste-backend/internal/middleware"
	"github.com/reveste/reveste-backend/internal/repository/postgres"
	"github.com/reveste/reveste-backend/internal/retry"
	"github.com/reveste/reveste-backend/internal/service"
	"github.com/reveste/reveste-backend/internal/session"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Connect to database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	// Verify database connection
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Initialize repositories
	userRepo := postgres.NewUserRepository(pool)
	goalRepo := postgres.NewGoalRepository(pool)
	impulseRepo := postgres.NewImpulseRepository(pool)

	// Session cache, cleared on logout and account deletion
	sessions := session.NewStore()

	// Read retry policy; writes always run exactly once
	readPolicy := retry.Policy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, goalRepo, impulseRepo, sessions, []byte(cfg.JWTSecret), cfg.TokenTTL)
	profileService := service.NewProfileService(userRepo)
	goalService := service.NewGoalService(goalRepo, readPolicy)
	impulseService := service.NewImpulseService(impulseRepo, userRepo, readPolicy)

	// Seed the demo account outside production
	if cfg.Env != "production" && cfg.Seed.Email != "" {
		seedDemoUser(userRepo, cfg.Seed)
	}

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware([]byte(cfg.JWTSecret), sessions)
	loginLimiter := middleware.NewLoginRateLimiter()
	defer loginLimiter.Stop()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	goalHandler := handler.NewGoalHandler(goalService)
	impulseHandler := handler.NewImpulseHandler(impulseService)
	dashboardHandler := handler.NewDashboardHandler(impulseService)
	investmentHandler := handler.NewInvestmentHandler()
	communityHandler := handler.NewCommunityHandler()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Register API routes
	handler.RegisterRoutes(e, sessionMiddleware, loginLimiter, authHandler, profileHandler, goalHandler, impulseHandler, dashboardHandler, investmentHandler, communityHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// seedDemoUser creates the pre-provisioned demo account when it does not
// exist yet. Login is the only exposed credential operation, so the demo
// account has to exist before anyone can sign in.
func seedDemoUser(userRepo domain.UserRepository, seed config.SeedConfig) {
	ctx := context.Background()
	if _, err := userRepo.GetByEmail(ctx, seed.Email); err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash seed password")
		return
	}

	user := &domain.User{
		Email:        seed.Email,
		Name:         seed.Name,
		PasswordHash: string(hash),
	}
	if _, err := userRepo.Create(ctx, user); err != nil {
		log.Error().Err(err).Str("email", seed.Email).Msg("Failed to seed demo user")
		return
	}
	log.Info().Str("email", seed.Email).Msg("Seeded demo user")
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
