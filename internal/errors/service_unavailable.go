package errors

import "net/http"

var ErrServiceUnavailable = &Exception{
	Message:    "Service unavailable",
	StatusCode: http.StatusServiceUnavailable,
}
