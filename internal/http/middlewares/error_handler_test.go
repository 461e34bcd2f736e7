package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	dto "task-manager.com/task-manager/internal/data_models"
	apperrors "task-manager.com/task-manager/internal/errors"
)

func runErrorHandler(t *testing.T, handler echo.HTTPErrorHandler, method string, err error) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(method, "/api/v1/tasks/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(err, c)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body dto.MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

func TestErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"task not found", apperrors.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"constructed", apperrors.New("must provide name", http.StatusBadRequest), http.StatusBadRequest, "must provide name"},
		{"wrapped domain", fmt.Errorf("update task: %w", apperrors.ErrOptimisticLock), http.StatusConflict, apperrors.ErrOptimisticLock.Message},
		{"default status", apperrors.New("no status", 0), http.StatusInternalServerError, "no status"},
		{"teapot", apperrors.New("short and stout", http.StatusTeapot), http.StatusTeapot, "short and stout"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, apperrors.GenericMessage},
		{"unwritable status", apperrors.New("bad code", 1000), http.StatusInternalServerError, apperrors.GenericMessage},
		{"negative status", apperrors.New("bad code", -1), http.StatusInternalServerError, apperrors.GenericMessage},
		{"router not found", echo.ErrNotFound, http.StatusNotFound, "Route does not exist"},
		{"router method not allowed", echo.ErrMethodNotAllowed, http.StatusNotFound, "Route does not exist"},
		{"framework client error", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "body too big"), http.StatusRequestEntityTooLarge, "Request Entity Too Large"},
		{"framework server error", echo.NewHTTPError(http.StatusBadGateway, "upstream secret"), http.StatusInternalServerError, apperrors.GenericMessage},
	}

	handler := ErrorHandler(zap.NewNop(), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runErrorHandler(t, handler, http.MethodGet, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := decodeMessage(t, rec); got != tt.wantMessage {
				t.Errorf("expected message %q, got %q", tt.wantMessage, got)
			}
		})
	}
}

func TestErrorHandler_DoesNotLeakInternals(t *testing.T) {
	handler := ErrorHandler(zap.NewNop(), nil)

	rec := runErrorHandler(t, handler, http.MethodGet, errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Errorf("response leaked internal error: %s", rec.Body.String())
	}
}

func TestErrorHandler_LogsByKind(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := ErrorHandler(zap.New(core), nil)

	runErrorHandler(t, handler, http.MethodGet, errors.New("connection refused"))
	runErrorHandler(t, handler, http.MethodGet, apperrors.ErrTaskNotFound)

	unexpected := logs.FilterMessage("unhandled error").All()
	if len(unexpected) != 1 || unexpected[0].Level != zapcore.ErrorLevel {
		t.Fatalf("expected one error-level entry, got %v", unexpected)
	}
	if !strings.Contains(unexpected[0].ContextMap()["error"].(string), "connection refused") {
		t.Error("expected the cause to be logged")
	}

	domain := logs.FilterMessage("request failed").All()
	if len(domain) != 1 || domain[0].Level != zapcore.InfoLevel {
		t.Fatalf("expected one info-level entry, got %v", domain)
	}
}

func TestErrorHandler_CommittedResponseIsNotRewritten(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.String(http.StatusOK, "partial"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	ErrorHandler(zap.NewNop(), nil)(errors.New("late failure"), c)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status to stay 200, got %d", rec.Code)
	}
	if rec.Body.String() != "partial" {
		t.Errorf("expected body to stay untouched, got %q", rec.Body.String())
	}
}

func TestErrorHandler_HeadHasNoBody(t *testing.T) {
	rec := runErrorHandler(t, ErrorHandler(zap.NewNop(), nil), http.MethodHead, apperrors.ErrTaskNotFound)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestErrorHandler_CountsErrors(t *testing.T) {
	metrics, err := NewMetrics(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}
	handler := ErrorHandler(zap.NewNop(), metrics)

	runErrorHandler(t, handler, http.MethodGet, apperrors.ErrTaskNotFound)
	runErrorHandler(t, handler, http.MethodGet, apperrors.ErrInvalidJSON)
	runErrorHandler(t, handler, http.MethodGet, errors.New("boom"))

	if got := testutil.ToFloat64(metrics.errors.WithLabelValues("domain")); got != 2 {
		t.Errorf("expected 2 domain errors, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.errors.WithLabelValues("unexpected")); got != 1 {
		t.Errorf("expected 1 unexpected error, got %v", got)
	}
}

func TestNotFound(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/unknown/path", nil)
	rec := httptest.NewRecorder()

	if err := NotFound(e.NewContext(req, rec)); err != nil {
		t.Fatalf("not found handler must not forward errors: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if got := decodeMessage(t, rec); got != "Route does not exist" {
		t.Errorf("unexpected message %q", got)
	}
}
