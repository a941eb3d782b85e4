package handler

import (
	"strconv"
	"strings"

	"github.com/pmboard/taskmanager-api/internal/core/domain"
	"github.com/pmboard/taskmanager-api/internal/core/ports"
)

// projectRequest is used for both create and update.
type projectRequest struct {
	Name        string  `json:"name"        validate:"required,min=3"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	StartDate   string  `json:"startDate"   validate:"required,isodate"`
	EndDate     *string `json:"endDate"     validate:"omitempty,isodate"`
	Status      string  `json:"status"      validate:"omitempty,status"`
}

func (r projectRequest) toInput() (ports.ProjectInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return ports.ProjectInput{}, domain.NewValidationError("startDate must be a valid date")
	}
	end, err := parseOptionalDate(r.EndDate)
	if err != nil {
		return ports.ProjectInput{}, domain.NewValidationError("endDate must be a valid date")
	}
	return ports.ProjectInput{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   start,
		EndDate:     end,
		Status:      r.Status,
	}, nil
}

type listProjectsQuery struct {
	Q      string `query:"q"`
	Status string `query:"status" validate:"omitempty,status"`
	Sort   string `query:"sort"   validate:"omitempty,oneof=asc desc"`
	Page   string `query:"page"   validate:"omitempty,posint"`
	Limit  string `query:"limit"  validate:"omitempty,posint"`
}

func (q listProjectsQuery) toInput() ports.ListProjectsInput {
	page, _ := strconv.Atoi(q.Page)
	limit, _ := strconv.Atoi(q.Limit)
	return ports.ListProjectsInput{
		Search: strings.TrimSpace(q.Q),
		Status: q.Status,
		Sort:   q.Sort,
		Page:   page,
		Limit:  limit,
	}
}

type projectResponse struct {
	Project *domain.Project `json:"project"`
	Message string          `json:"message"`
}
