package http

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "task-service.com/task-service/internal/data_models"
	apperrors "task-service.com/task-service/internal/errors"
	"task-service.com/task-service/internal/http/validators"
	repository "task-service.com/task-service/internal/repositories"
	"task-service.com/task-service/internal/services"
)

const (
	defaultLimit  = 50
	defaultOffset = 0
)

type Handler struct {
	taskService *services.TaskService
}

func NewHandler(taskService *services.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) ListTasks(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultLimit)
	if err != nil || limit <= 0 {
		return apperrors.InvalidNumberParam("limit")
	}

	offset, err := queryInt(c, "offset", defaultOffset)
	if err != nil || offset < 0 {
		return apperrors.InvalidNumberParam("offset")
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), limit, offset)
	if err != nil {
		return internalError("list tasks", err)
	}

	return c.JSON(http.StatusOK, dto.FromTasks(tasks, limit, offset))
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return apperrors.TaskNotFound(id)
		}
		return internalError("get task", err)
	}

	return c.JSON(http.StatusOK, dto.FromTask(*task))
}

// CreateTask answers 500 for any failure, malformed bodies included.
func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.TaskData
	if err := c.Bind(&req); err != nil {
		return internalError("create task: decode body", err)
	}
	if err := validators.ValidateTaskRequest(&req); err != nil {
		return internalError("create task: validate body", err)
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req.Name, req.State)
	if err != nil {
		return internalError("create task", err)
	}

	return c.JSON(http.StatusCreated, dto.FromTask(*task))
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req dto.TaskData
	if err := c.Bind(&req); err != nil {
		return internalError("update task: decode body", err)
	}
	if err := validators.ValidateTaskRequest(&req); err != nil {
		return internalError("update task: validate body", err)
	}

	if err := h.taskService.UpdateTask(c.Request().Context(), id, req.Name, req.State); err != nil {
		return internalError("update task", err)
	}

	return c.String(http.StatusOK, "Task updated successfully")
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return internalError("delete task", err)
	}

	return c.String(http.StatusOK, "Task deleted successfully")
}

func (h *Handler) Ping(c echo.Context) error {
	return c.String(http.StatusOK, "pong")
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, apperrors.ErrMissedID
	}
	return id, nil
}

func queryInt(c echo.Context, name string, defaultVal int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(raw)
}

// internalError logs the cause and hides it from the client.
func internalError(op string, err error) error {
	log.Printf("%s: %v", op, err)
	return apperrors.ErrInternal
}
