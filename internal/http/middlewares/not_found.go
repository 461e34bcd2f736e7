package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-manager.com/task-manager/internal/data_models"
	apperrors "task-manager.com/task-manager/internal/errors"
)

// NotFound is the terminal handler for requests no route matched.
func NotFound(c echo.Context) error {
	return writeMessage(c, http.StatusNotFound, apperrors.ErrRouteNotFound.Message)
}

func writeMessage(c echo.Context, status int, message string) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(status)
	}
	return c.JSON(status, dto.MessageResponse{Message: message})
}
