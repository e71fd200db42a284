package errors

import "net/http"

var ErrInternal = &Exception{
	Message:    "Internal server error",
	StatusCode: http.StatusInternalServerError,
}
