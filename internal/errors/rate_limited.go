package errors

import "net/http"

var ErrRateLimited = &Exception{
	Message:    "Rate limit exceeded",
	StatusCode: http.StatusTooManyRequests,
}
