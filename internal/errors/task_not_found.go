package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Message:    "Task not found",
	StatusCode: http.StatusNotFound,
}
