package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	middleware "task-manager.com/task-manager/internal/http/middlewares"
)

// Stage is one named step of the request pipeline. A stage either answers the request or calls the
// next stage; any error it returns travels back up to the request-log stage.
type Stage struct {
	Name       string
	Middleware echo.MiddlewareFunc
}

// Pipeline is applied in order, first stage outermost.
type Pipeline []Stage

func (p Pipeline) Apply(e *echo.Echo) {
	for _, stage := range p {
		e.Use(stage.Middleware)
	}
}

func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, stage := range p {
		names[i] = stage.Name
	}
	return names
}

type PipelineOptions struct {
	Logger    *zap.Logger
	Metrics   *middleware.Metrics
	RateLimit int
	BodyLimit string
	StaticDir string
}

func NewPipeline(opts PipelineOptions) Pipeline {
	p := Pipeline{
		{Name: "request-id", Middleware: echomw.RequestID()},
	}

	if opts.Metrics != nil {
		p = append(p, Stage{Name: "metrics", Middleware: opts.Metrics.Middleware()})
	}

	p = append(p,
		Stage{Name: "request-log", Middleware: middleware.RequestLogger(opts.Logger)},
		Stage{Name: "recover", Middleware: middleware.Recover(opts.Logger)},
		Stage{Name: "rate-limit", Middleware: middleware.RateLimiter(opts.RateLimit, time.Minute)},
	)

	if opts.StaticDir != "" {
		p = append(p, Stage{Name: "static", Middleware: echomw.StaticWithConfig(echomw.StaticConfig{Root: opts.StaticDir})})
	}

	if opts.BodyLimit != "" {
		p = append(p, Stage{Name: "body-limit", Middleware: echomw.BodyLimit(opts.BodyLimit)})
	}

	return p
}
