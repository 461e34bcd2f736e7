package errors

import "net/http"

var ErrOptimisticLock = &Exception{
	Message:    "Task was modified concurrently, reload and retry",
	StatusCode: http.StatusConflict,
}
