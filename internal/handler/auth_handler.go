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
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidEmail) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "email", Message: "Must be a valid email address"},
			})
		}
		if service.IsAuthError(err) {
			// User-not-found and wrong-password present identically so the
			// response does not reveal which part of the pair was wrong
			return NewUnauthorizedError(c, "Invalid credentials. Check your email and password.")
		}
		log.Error().Err(err).Msg("Login failed")
		return NewInternalError(c, "Failed to log in")
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token: result.Token,
		User: UserResponse{
			ID:    result.User.ID.String(),
			Email: result.User.Email,
			Name:  result.User.Name,
		},
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID := middleware.GetSessionID(c)
	if sessionID != "" {
		h.authService.Logout(sessionID)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAccount handles DELETE /api/v1/auth/account
func (h *AuthHandler) DeleteAccount(c echo.Context) error {
	userID := middleware.GetUserID(c)
	email := middleware.GetUserEmail(c)
	if userID == uuid.Nil || email == "" {
		return NewUnauthorizedError(c, "Session required")
	}

	err := h.authService.DeleteAccount(c.Request().Context(), email, userID)
	if err != nil {
		var partial *domain.AccountDeletionPartialError
		if errors.As(err, &partial) {
			return NewPartialDeletionError(c,
				"Account deletion did not fully complete. Retry the deletion to clean up remaining data.")
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to delete account")
		return NewInternalError(c, "Failed to delete account")
	}

	log.Info().Str("user_id", userID.String()).Msg("Account deleted")
	return c.NoContent(http.StatusNoContent)
}
