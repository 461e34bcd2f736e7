package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "task-manager.com/task-manager/internal/errors"
)

func TestRateLimiter(t *testing.T) {
	e := echo.New()
	limited := RateLimiter(2, time.Minute)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	call := func(remoteAddr string) error {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tasks", nil)
		req.RemoteAddr = remoteAddr
		return limited(e.NewContext(req, httptest.NewRecorder()))
	}

	for i := 0; i < 2; i++ {
		if err := call("10.0.0.1:1234"); err != nil {
			t.Fatalf("request %d: expected to pass, got %v", i, err)
		}
	}

	if err := call("10.0.0.1:1234"); !errors.Is(err, apperrors.ErrRateLimited) {
		t.Errorf("expected ErrRateLimited, got %v", err)
	}

	if err := call("10.0.0.2:1234"); err != nil {
		t.Errorf("other clients must have their own bucket, got %v", err)
	}
}

func TestRateLimiter_DisabledForNonPositiveLimit(t *testing.T) {
	e := echo.New()
	limited := RateLimiter(0, time.Minute)(func(c echo.Context) error {
		return nil
	})

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if err := limited(e.NewContext(req, httptest.NewRecorder())); err != nil {
			t.Fatalf("expected no limiting, got %v", err)
		}
	}
}
