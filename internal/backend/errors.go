package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers network failures and non-2xx responses.
	ErrTransport = errors.New("backend unavailable")
	// ErrDecode is returned when a response body does not match any known schema.
	ErrDecode = errors.New("unexpected backend response")
)

// StatusError is a non-2xx response from the backend. It matches ErrTransport.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: backend returned status %d", e.Endpoint, e.Code)
	}
	return fmt.Sprintf("%s: backend returned status %d: %s", e.Endpoint, e.Code, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrTransport
}
