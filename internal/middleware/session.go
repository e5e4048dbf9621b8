package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/reveste/reveste-backend/internal/session"
	"github.com/rs/zerolog/log"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserIDKey is the context key for the authenticated user's identifier
	UserIDKey contextKey = "user_id"
	// SessionIDKey is the context key for the session identifier
	SessionIDKey contextKey = "session_id"
	// UserEmailKey is the context key for the session's credential email
	UserEmailKey contextKey = "user_email"
)

// SessionMiddleware validates session tokens against the session cache
type SessionMiddleware struct {
	secret   []byte
	sessions *session.Store
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(secret []byte, sessions *session.Store) *SessionMiddleware {
	return &SessionMiddleware{secret: secret, sessions: sessions}
}

// Authenticate returns a middleware that requires a valid session token.
// Used on write and account routes, where a missing session is a hard
// precondition failure.
func (m *SessionMiddleware) Authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := m.resolve(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing session token")
			}
			injectSession(c, sess)
			return next(c)
		}
	}
}

// AuthenticateOptional returns a middleware that resolves the session when
// a token is present but lets the request through without one. Read routes
// use it: handlers see uuid.Nil and serve the empty/default result.
func (m *SessionMiddleware) AuthenticateOptional() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess, ok := m.resolve(c); ok {
				injectSession(c, sess)
			}
			return next(c)
		}
	}
}

func (m *SessionMiddleware) resolve(c echo.Context) (session.Session, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return session.Session{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return session.Session{}, false
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("Token validation failed")
		return session.Session{}, false
	}

	// A token is only as good as the session it points at; logout and
	// account deletion invalidate tokens by removing the session.
	sess, ok := m.sessions.Get(claims.ID)
	if !ok {
		return session.Session{}, false
	}
	if sess.UserID.String() != claims.Subject {
		return session.Session{}, false
	}
	return sess, true
}

func injectSession(c echo.Context, sess session.Session) {
	ctx := context.WithValue(c.Request().Context(), UserIDKey, sess.UserID)
	ctx = context.WithValue(ctx, SessionIDKey, sess.ID)
	ctx = context.WithValue(ctx, UserEmailKey, sess.Email)
	c.SetRequest(c.Request().WithContext(ctx))
}

// GetUserID extracts the authenticated user's identifier from the context.
// Returns uuid.Nil when no session was resolved.
func GetUserID(c echo.Context) uuid.UUID {
	if id, ok := c.Request().Context().Value(UserIDKey).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetSessionID extracts the session identifier from the context
func GetSessionID(c echo.Context) string {
	if id, ok := c.Request().Context().Value(SessionIDKey).(string); ok {
		return id
	}
	return ""
}

// GetUserEmail extracts the session's credential email from the context
func GetUserEmail(c echo.Context) string {
	if email, ok := c.Request().Context().Value(UserEmailKey).(string); ok {
		return email
	}
	return ""
}
