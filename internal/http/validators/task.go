package validators

import (
	"errors"
	"strings"

	"task-service.com/task-service/internal/constants"
	dto "task-service.com/task-service/internal/data_models"
)

var ErrNameRequired = errors.New("name is required")

func ValidateTaskRequest(r *dto.TaskData) error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if !r.State.IsValid() {
		return constants.ErrUnknownTaskState
	}
	return nil
}
