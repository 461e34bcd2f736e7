package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "task-manager.com/task-manager/internal/errors"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness plus reachability of the task store.
type HealthHandler struct {
	store     pinger
	startedAt time.Time
}

func NewHealthHandler(store pinger) *HealthHandler {
	return &HealthHandler{store: store, startedAt: time.Now()}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	UptimeSec int64  `json:"uptime_seconds"`
}

func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		return fmt.Errorf("health check: store unreachable: %v: %w", err, apperrors.ErrServiceUnavailable)
	}

	return c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		UptimeSec: int64(time.Since(h.startedAt).Seconds()),
	})
}
