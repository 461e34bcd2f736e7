package errors

import "net/http"

type Kind int

const (
	KindUnexpected Kind = iota
	KindDomain
)

func (k Kind) String() string {
	switch k {
	case KindDomain:
		return "domain"
	default:
		return "unexpected"
	}
}

// Classification is the outcome of matching an error against the domain error type.
// Message is always safe to send to a client.
type Classification struct {
	Kind       Kind
	StatusCode int
	Message    string
	Cause      error
}

func Classify(err error) Classification {
	if appErr, ok := As(err); ok {
		status := appErr.StatusCode
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return Classification{
			Kind:       KindDomain,
			StatusCode: status,
			Message:    appErr.Message,
			Cause:      err,
		}
	}

	return Unexpected(err)
}

func Unexpected(err error) Classification {
	return Classification{
		Kind:       KindUnexpected,
		StatusCode: http.StatusInternalServerError,
		Message:    GenericMessage,
		Cause:      err,
	}
}
