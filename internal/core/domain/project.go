package domain

import "time"

// Status is the lifecycle state shared by projects and tasks.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// StatusOrDefault returns Pending for an empty status.
func StatusOrDefault(s string) Status {
	if s == "" {
		return StatusPending
	}
	return Status(s)
}

// Project is a unit of work exclusively owned by the user that created it.
type Project struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Status      Status     `json:"status"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CheckDates enforces endDate >= startDate. It must pass before any write.
func (p *Project) CheckDates() error {
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return NewValidationError(MsgEndBeforeStart)
	}
	return nil
}

// MsgEndBeforeStart is reported when a project ends before it starts.
const MsgEndBeforeStart = "End date must be greater than or equal to Start date"
