package dto

import (
	"task-service.com/task-service/internal/constants"
	model "task-service.com/task-service/internal/models"
)

// TaskData is the task shape exchanged over HTTP. ID is ignored on input.
type TaskData struct {
	ID    *int                `json:"id,omitempty"`
	Name  string              `json:"name"`
	State constants.TaskState `json:"state"`
}

type TaskListData struct {
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	Count  int        `json:"count"`
	Data   []TaskData `json:"data"`
}

func FromTask(t model.Task) TaskData {
	id := t.ID
	return TaskData{ID: &id, Name: t.Name, State: t.State}
}

func FromTasks(tasks []model.Task, limit, offset int) TaskListData {
	data := make([]TaskData, 0, len(tasks))
	for _, t := range tasks {
		data = append(data, FromTask(t))
	}

	return TaskListData{
		Limit:  limit,
		Offset: offset,
		Count:  len(data),
		Data:   data,
	}
}
