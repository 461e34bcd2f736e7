package http

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	middleware "task-manager.com/task-manager/internal/http/middlewares"
	"task-manager.com/task-manager/internal/http/validators"
)

type ServerOptions struct {
	Logger    *zap.Logger
	Metrics   *middleware.Metrics
	Gatherer  prometheus.Gatherer
	RateLimit int
	BodyLimit string
	StaticDir string
}

// NewServer wires the pipeline, the routes, the terminal not-found handler and, last, the
// centralized error handler.
func NewServer(h *Handler, health *HealthHandler, opts ServerOptions) *echo.Echo {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.New()

	NewPipeline(PipelineOptions{
		Logger:    logger,
		Metrics:   opts.Metrics,
		RateLimit: opts.RateLimit,
		BodyLimit: opts.BodyLimit,
		StaticDir: opts.StaticDir,
	}).Apply(e)

	Register(e, h, health, opts.Gatherer)

	e.RouteNotFound(middleware.CatchAllRoute, middleware.NotFound)
	e.HTTPErrorHandler = middleware.ErrorHandler(logger, opts.Metrics)

	return e
}

func Register(e *echo.Echo, h *Handler, health *HealthHandler, gatherer prometheus.Gatherer) {
	tasks := e.Group("/api/v1/tasks")
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.CreateTask)
	tasks.GET("/:id", h.GetTask)
	tasks.PATCH("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)

	if health != nil {
		e.GET("/health", health.Check)
	}
	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}
