package errors

import "net/http"

func InvalidNumberParam(name string) *Exception {
	return New(http.StatusBadRequest, "Wrong value at '%s' parameter, please use number", name)
}
