package errors

import "net/http"

var ErrRouteNotFound = &Exception{
	Message:    "Route does not exist",
	StatusCode: http.StatusNotFound,
}
