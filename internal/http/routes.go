package http

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-service.com/task-service/internal/http/middlewares"
	"task-service.com/task-service/internal/ratelimit"
)

// Register wires middlewares and task routes. A nil limiter disables rate
// limiting. Without a preset e.IPExtractor the client IP is the socket peer,
// so forwarding headers cannot pick the rate limit key.
func Register(e *echo.Echo, h *Handler, limiter ratelimit.Limiter) {
	e.HTTPErrorHandler = ErrorHandler
	if e.IPExtractor == nil {
		e.IPExtractor = echo.ExtractIPDirect()
	}

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	if limiter != nil {
		e.Use(middleware.RateLimiter(limiter))
	}

	e.GET("/ping", h.Ping)

	e.GET("/tasks", h.ListTasks)
	e.GET("/task/:id", h.GetTask)
	e.POST("/task", h.CreateTask)
	e.PUT("/task/:id", h.UpdateTask)
	e.DELETE("/task/:id", h.DeleteTask)
}
