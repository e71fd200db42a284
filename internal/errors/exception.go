package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Exception is an error whose message is safe to return to the client.
type Exception struct {
	Message    string
	StatusCode int
}

func New(statusCode int, format string, args ...any) *Exception {
	return &Exception{
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
	}
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the client facing text for err. Errors that are not
// an Exception collapse to the generic internal message.
func PublicMessage(err error) string {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ErrInternal.Message
}
