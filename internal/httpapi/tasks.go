package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"meditrack/internal/assignment"
	"meditrack/internal/models"
	"meditrack/internal/store"
)

type createTaskRequest struct {
	TaskType       string `json:"taskType"`
	Description    string `json:"description"`
	RelatedVisitID string `json:"relatedVisitId"`
}

type taskResponse struct {
	Message string       `json:"message"`
	Task    *models.Task `json:"task"`
}

// createTask creates a task and auto-assigns it to the least-loaded on-duty
// staff member for the task type's role.
func (s *Server) createTask(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Description) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}

	var relatedVisitID *uuid.UUID
	if req.RelatedVisitID != "" {
		id, err := uuid.Parse(req.RelatedVisitID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid relatedVisitId")
		}
		relatedVisitID = &id
	}

	task, msg, err := s.engine.CreateAndAssign(c.Request().Context(), assignment.CreateTaskRequest{
		TaskType:       models.TaskType(req.TaskType),
		Description:    req.Description,
		RelatedVisitID: relatedVisitID,
	})
	if err != nil {
		if errors.Is(err, assignment.ErrInvalidTaskType) {
			return echo.NewHTTPError(http.StatusBadRequest, "taskType must be \"Lab Test\" or \"Pharmacy\"")
		}
		return err
	}

	return c.JSON(http.StatusCreated, taskResponse{Message: msg, Task: task})
}

func (s *Server) listTasks(c echo.Context) error {
	tasks, err := s.store.ListTasks(c.Request().Context())
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) listTasksByStaff(c echo.Context) error {
	staffID, err := parseID(c)
	if err != nil {
		return err
	}
	tasks, err := s.store.ListTasksByStaff(c.Request().Context(), staffID)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

type updateTaskRequest struct {
	Status string `json:"status"`
}

// updateTaskStatus moves a task through its lifecycle. Only the known
// statuses are accepted; assignment fields are immutable over this endpoint.
func (s *Server) updateTaskStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	status := models.TaskStatus(req.Status)
	if !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	task, err := s.store.UpdateTaskStatus(c.Request().Context(), id, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "task not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, task)
}
