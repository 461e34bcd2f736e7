package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "task-manager.com/task-manager/internal/errors"
)

// ErrorHandler is the centralized error stage. It answers every error that reaches it with exactly
// one response: domain errors with their own status and message, everything else with a generic 500.
func ErrorHandler(logger *zap.Logger, metrics *Metrics) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("error handler panicked", zap.Any("panic", r), zap.NamedError("original", err))
				if !c.Response().Committed {
					_ = writeMessage(c, http.StatusInternalServerError, apperrors.GenericMessage)
				}
			}
		}()

		classified := classify(err)
		if metrics != nil {
			metrics.ObserveError(classified.Kind)
		}

		fields := []zap.Field{
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.Int("status", classified.StatusCode),
			zap.String("kind", classified.Kind.String()),
			zap.Error(err),
		}

		if c.Response().Committed {
			logger.Warn("error after response was committed", fields...)
			return
		}

		if classified.Kind == apperrors.KindDomain {
			logger.Info("request failed", fields...)
		} else {
			logger.Error("unhandled error", fields...)
		}

		if writeErr := writeMessage(c, classified.StatusCode, classified.Message); writeErr != nil {
			logger.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}

func classify(err error) apperrors.Classification {
	var httpErr *echo.HTTPError
	if _, isDomain := apperrors.As(err); !isDomain && errors.As(err, &httpErr) {
		return classifyFrameworkError(err, httpErr)
	}

	classified := apperrors.Classify(err)
	if classified.StatusCode < 100 || classified.StatusCode > 599 {
		return apperrors.Unexpected(fmt.Errorf("invalid status code %d: %w", classified.StatusCode, err))
	}
	return classified
}

// Router and middleware failures surface as *echo.HTTPError. Unmatched paths and methods share the
// not-found answer; other client errors keep their status with the standard status text.
func classifyFrameworkError(err error, httpErr *echo.HTTPError) apperrors.Classification {
	switch {
	case httpErr.Code == http.StatusNotFound, httpErr.Code == http.StatusMethodNotAllowed:
		return apperrors.Classify(apperrors.ErrRouteNotFound)
	case httpErr.Code >= 400 && httpErr.Code < 500:
		return apperrors.Classify(apperrors.New(http.StatusText(httpErr.Code), httpErr.Code))
	default:
		return apperrors.Unexpected(err)
	}
}
