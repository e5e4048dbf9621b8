package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLoginRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewLoginRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("Expected attempt %d within burst to be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("Expected attempt beyond burst to be denied")
	}
}

func TestLoginRateLimiter_PerClientIsolation(t *testing.T) {
	rl := NewLoginRateLimiterWithConfig(10, 1)
	defer rl.Stop()

	if !rl.Allow("1.1.1.1") {
		t.Fatal("Expected first client's attempt to be allowed")
	}
	if !rl.Allow("2.2.2.2") {
		t.Error("Expected second client to have its own budget")
	}
}

func TestLoginRateLimitMiddleware_TooManyRequests(t *testing.T) {
	rl := NewLoginRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	e := echo.New()
	mw := LoginRateLimitMiddleware(rl)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	call := func() error {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.Header.Set("X-Real-IP", "5.5.5.5")
		rec := httptest.NewRecorder()
		return handler(e.NewContext(req, rec))
	}

	if err := call(); err != nil {
		t.Fatalf("Expected first attempt to pass, got %v", err)
	}

	err := call()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusTooManyRequests {
		t.Errorf("Expected 429, got %d", httpErr.Code)
	}
}
