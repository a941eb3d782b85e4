package domain

import "time"

// Task belongs to exactly one project and inherits its owner from it.
// Project is fixed at creation.
type Task struct {
	ID          string     `json:"_id"`
	Project     string     `json:"project"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
