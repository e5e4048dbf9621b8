package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/reveste/reveste-backend/internal/session"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID uuid.UUID, sessionID string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        sessionID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return token
}

func runMiddleware(mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, uuid.UUID, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUserID uuid.UUID
	handler := mw(func(c echo.Context) error {
		seenUserID = GetUserID(c)
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, seenUserID, err
}

func TestAuthenticate_ValidToken(t *testing.T) {
	sessions := session.NewStore()
	userID := uuid.New()
	sessions.Put(session.Session{ID: "s1", UserID: userID})
	mw := NewSessionMiddleware([]byte(testSecret), sessions)

	token := signToken(t, userID, "s1")
	_, seenUserID, err := runMiddleware(mw.Authenticate(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if seenUserID != userID {
		t.Errorf("Expected user ID %s in context, got %s", userID, seenUserID)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	mw := NewSessionMiddleware([]byte(testSecret), session.NewStore())

	_, _, err := runMiddleware(mw.Authenticate(), "")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", httpErr.Code)
	}
}

func TestAuthenticate_RevokedSession(t *testing.T) {
	sessions := session.NewStore()
	userID := uuid.New()
	mw := NewSessionMiddleware([]byte(testSecret), sessions)

	// Valid signature, but the session was removed (logout / account deletion)
	token := signToken(t, userID, "gone")
	_, _, err := runMiddleware(mw.Authenticate(), "Bearer "+token)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", httpErr.Code)
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	sessions := session.NewStore()
	userID := uuid.New()
	sessions.Put(session.Session{ID: "s1", UserID: userID})
	mw := NewSessionMiddleware([]byte("other-secret"), sessions)

	token := signToken(t, userID, "s1")
	_, _, err := runMiddleware(mw.Authenticate(), "Bearer "+token)
	if err == nil {
		t.Fatal("Expected error for token signed with a different secret")
	}
}

func TestAuthenticateOptional_NoTokenPassesThrough(t *testing.T) {
	mw := NewSessionMiddleware([]byte(testSecret), session.NewStore())

	rec, seenUserID, err := runMiddleware(mw.AuthenticateOptional(), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
	if seenUserID != uuid.Nil {
		t.Errorf("Expected nil user ID without session, got %s", seenUserID)
	}
}

func TestAuthenticateOptional_WithToken(t *testing.T) {
	sessions := session.NewStore()
	userID := uuid.New()
	sessions.Put(session.Session{ID: "s1", UserID: userID})
	mw := NewSessionMiddleware([]byte(testSecret), sessions)

	token := signToken(t, userID, "s1")
	_, seenUserID, err := runMiddleware(mw.AuthenticateOptional(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if seenUserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, seenUserID)
	}
}
