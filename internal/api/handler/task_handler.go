package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pmboard/taskmanager-api/internal/api/response"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
	"github.com/pmboard/taskmanager-api/internal/pkg/metrics"
)

const (
	msgTaskCreated = "Task created successfully"
	msgTaskUpdated = "Task updated successfully"
	msgTaskDeleted = "Task deleted successfully"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create adds a task to one of the caller's projects.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  response.Envelope{data=taskResponse}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      404   {object}  response.ErrorEnvelope
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	t, err := h.taskService.Create(c.Request().Context(), who, in)
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(t.Status)).Inc()
	return response.Success(c, http.StatusCreated, taskResponse{Task: t, Message: msgTaskCreated})
}

// Get returns a single task.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  response.Envelope{data=taskResponse}
// @Failure      403  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	t, err := h.taskService.Get(c.Request().Context(), who, id)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, taskResponse{Task: t})
}

// ListByProject returns the tasks of a project, optionally filtered by q.
//
// @Summary      List tasks of a project
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      string  true   "Project ID"
// @Param        q          query     string  false  "Title or description contains"
// @Success      200        {object}  response.Envelope{data=taskListResponse}
// @Failure      404        {object}  response.ErrorEnvelope
// @Router       /tasks/project/{projectId} [get]
func (h *TaskHandler) ListByProject(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListByProject(c.Request().Context(), who, projectID, strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, taskListResponse{Items: tasks})
}

// Update applies a partial update. Mounted on both PUT and PATCH.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task ID"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope{data=taskResponse}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      403   {object}  response.ErrorEnvelope
// @Failure      404   {object}  response.ErrorEnvelope
// @Router       /tasks/{id} [put]
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	t, err := h.taskService.Update(c.Request().Context(), who, id, in)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, taskResponse{Task: t, Message: msgTaskUpdated})
}

// Delete removes a task.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  response.Envelope{data=response.Message}
// @Failure      403  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), who, id); err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, response.Message{Message: msgTaskDeleted})
}
