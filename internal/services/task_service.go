package services

import (
	"context"
	"log"

	"task-service.com/task-service/internal/constants"
	model "task-service.com/task-service/internal/models"
)

type TaskStore interface {
	ListActive(ctx context.Context, limit, offset int) ([]model.Task, error)
	FindActiveByID(ctx context.Context, id int) (*model.Task, error)
	CreateTask(ctx context.Context, name string, state constants.TaskState) (*model.Task, error)
	UpdateActive(ctx context.Context, id int, name string, state constants.TaskState) (int64, error)
	SoftDelete(ctx context.Context, id int) (int64, error)
}

type TaskService struct {
	repo TaskStore
}

func NewTaskService(repo TaskStore) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) ListTasks(ctx context.Context, limit, offset int) ([]model.Task, error) {
	return s.repo.ListActive(ctx, limit, offset)
}

func (s *TaskService) GetTask(ctx context.Context, id int) (*model.Task, error) {
	return s.repo.FindActiveByID(ctx, id)
}

// CreateTask stores the task with the caller supplied state; DELETED is
// accepted and produces a task that is never visible.
func (s *TaskService) CreateTask(ctx context.Context, name string, state constants.TaskState) (*model.Task, error) {
	return s.repo.CreateTask(ctx, name, state)
}

// UpdateTask succeeds even when no live task matched id.
// TODO: report not found once clients stop relying on the silent 200.
func (s *TaskService) UpdateTask(ctx context.Context, id int, name string, state constants.TaskState) error {
	affected, err := s.repo.UpdateActive(ctx, id, name, state)
	if err != nil {
		return err
	}

	if affected == 0 {
		log.Printf("update: no live task matched id %d", id)
	}
	return nil
}

// DeleteTask succeeds even when no live task matched id, so repeated deletes
// are harmless.
func (s *TaskService) DeleteTask(ctx context.Context, id int) error {
	affected, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}

	if affected == 0 {
		log.Printf("delete: no live task matched id %d", id)
	}
	return nil
}
