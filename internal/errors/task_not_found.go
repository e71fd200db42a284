package errors

import "net/http"

// TaskNotFound is reported as 400, not 404; clients depend on that status.
func TaskNotFound(id int) *Exception {
	return New(http.StatusBadRequest, "Task with ID '%d' not found", id)
}
