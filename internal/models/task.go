package model

import (
	"task-service.com/task-service/internal/constants"
)

// Task maps the tasks table. Rows are never physically removed; a deleted
// task carries constants.StateDeleted.
type Task struct {
	ID    int                 `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string              `gorm:"size:100;not null" json:"name"`
	State constants.TaskState `gorm:"type:varchar(100);not null" json:"state"`
}

func (Task) TableName() string {
	return "tasks"
}
