package models

import "time"

// ProjectStatus tracks progress through a project.
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "NOT_STARTED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
)

// Project represents a personal project.
type Project struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ValidProjectStatus reports whether the value is a known project status.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectNotStarted, ProjectInProgress, ProjectCompleted:
		return true
	}
	return false
}
