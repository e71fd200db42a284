package errors

import "net/http"

var ErrMissedID = &Exception{
	Message:    "Missed ID",
	StatusCode: http.StatusBadRequest,
}
