package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task-service.com/task-service/internal/constants"
	"task-service.com/task-service/internal/database"
	model "task-service.com/task-service/internal/models"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository runs each query in its own transaction. Rows in
// constants.StateDeleted are invisible to every method.
type TaskRepository struct {
	db *database.Handle
}

func NewTaskRepository(db *database.Handle) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListActive(ctx context.Context, limit, offset int) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Where("state <> ?", constants.StateDeleted).
			Order("id asc").
			Limit(limit).
			Offset(offset).
			Find(&tasks).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks (limit %d, offset %d): %w", limit, offset, err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindActiveByID(ctx context.Context, id int) (*model.Task, error) {
	var task model.Task
	err := r.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Where("id = ? AND state <> ?", id, constants.StateDeleted).First(&task).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to load task %d: %w", id, err)
	}
	return &task, nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, name string, state constants.TaskState) (*model.Task, error) {
	task := &model.Task{
		Name:  name,
		State: state,
	}

	err := r.db.Run(ctx, func(tx *gorm.DB) error {
		return tx.Create(task).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert task (name %q, state %s): %w", name, state, err)
	}
	return task, nil
}

// UpdateActive overwrites name and state of a live task and reports how many
// rows matched. Zero means the id is unknown or already deleted.
func (r *TaskRepository) UpdateActive(ctx context.Context, id int, name string, state constants.TaskState) (int64, error) {
	var affected int64
	err := r.db.Run(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&model.Task{}).
			Where("id = ? AND state <> ?", id, constants.StateDeleted).
			Updates(map[string]interface{}{
				"name":  name,
				"state": state,
			})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return affected, nil
}

// SoftDelete moves a live task to constants.StateDeleted, leaving the name
// untouched.
func (r *TaskRepository) SoftDelete(ctx context.Context, id int) (int64, error) {
	var affected int64
	err := r.db.Run(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&model.Task{}).
			Where("id = ? AND state <> ?", id, constants.StateDeleted).
			Update("state", constants.StateDeleted)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return affected, nil
}
