package errors

import (
	"errors"
	"net/http"
)

// GenericMessage is the only message ever sent to clients for unexpected failures.
const GenericMessage = "Something went wrong, please try again later"

// Exception is a business-logic failure carrying the HTTP status it should be answered with.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// New builds a domain error. A zero status code means 500; any other value is kept as given.
func New(message string, statusCode int) *Exception {
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	return &Exception{
		Message:    message,
		StatusCode: statusCode,
	}
}

// As reports whether err is, or wraps, an *Exception.
func As(err error) (*Exception, bool) {
	var appErr *Exception
	if errors.As(err, &appErr) && appErr != nil {
		return appErr, true
	}
	return nil, false
}

func StatusCode(err error) int {
	return Classify(err).StatusCode
}
