package conditional

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned by services to answer with a specific status code.
// Any other error is answered with 500 (Internal Server Error).
type StatusError struct {
	Code int
	Err  error
}

// Errorf returns a StatusError with the given code and a formatted error.
func Errorf(code int, format string, a ...interface{}) *StatusError {
	return &StatusError{Code: code, Err: fmt.Errorf(format, a...)}
}

func (e *StatusError) Error() string {
	if e.Err == nil {
		return http.StatusText(e.Code)
	}
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// statusCode returns the response status code for an error returned by a service.
func statusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) && se.Code >= 400 && se.Code < 600 {
		return se.Code
	}
	return http.StatusInternalServerError
}
