package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pmboard/taskmanager-api/internal/api/response"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
	"github.com/pmboard/taskmanager-api/internal/pkg/metrics"
)

const (
	msgProjectCreated = "Project created successfully"
	msgProjectUpdated = "Project updated successfully"
	msgProjectDeleted = "Project deleted successfully"
)

// ProjectHandler exposes the caller's projects. Every route requires Auth.
type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// Create creates a project owned by the caller.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      projectRequest  true  "Project"
// @Success      201   {object}  response.Envelope{data=projectResponse}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      401   {object}  response.ErrorEnvelope
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	p, err := h.projectService.Create(c.Request().Context(), who, in)
	if err != nil {
		return err
	}

	metrics.ProjectsCreatedTotal.WithLabelValues(string(p.Status)).Inc()
	return response.Success(c, http.StatusCreated, projectResponse{Project: p, Message: msgProjectCreated})
}

// List returns one page of the caller's projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        q       query     string  false  "Name contains (case-insensitive)"
// @Param        status  query     string  false  "Status"  Enums(Pending, In Progress, Completed)
// @Param        sort    query     string  false  "Sort by startDate"  Enums(asc, desc)
// @Param        page    query     int     false  "Page, starting at 1"
// @Param        limit   query     int     false  "Page size, at most 100"
// @Success      200     {object}  response.Envelope{data=ports.ProjectPage}
// @Failure      400     {object}  response.ErrorEnvelope
// @Failure      401     {object}  response.ErrorEnvelope
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	var q listProjectsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	page, err := h.projectService.List(c.Request().Context(), who, q.toInput())
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, page)
}

// Get returns a project with its tasks.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Envelope{data=ports.ProjectDetail}
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.projectService.Get(c.Request().Context(), who, id)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, detail)
}

// Update replaces the editable fields of a project.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Project ID"
// @Param        body  body      projectRequest  true  "Project"
// @Success      200   {object}  response.Envelope{data=projectResponse}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      404   {object}  response.ErrorEnvelope
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	p, err := h.projectService.Update(c.Request().Context(), who, id, in)
	if err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, projectResponse{Project: p, Message: msgProjectUpdated})
}

// Delete removes a project and all of its tasks.
//
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  response.Envelope{data=response.Message}
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      404  {object}  response.ErrorEnvelope
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.projectService.Delete(c.Request().Context(), who, id); err != nil {
		return err
	}
	return response.Success(c, http.StatusOK, response.Message{Message: msgProjectDeleted})
}
