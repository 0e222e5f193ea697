package models

import "time"

// ListStatus is derived from a list's tasks, never persisted. The backend
// still stores a status column for legacy reasons; the client ignores it
// and recomputes after every task mutation.
type ListStatus string

const (
	ListOngoing   ListStatus = "ONGOING"
	ListCompleted ListStatus = "COMPLETED"
)

// Task is a checklist entry inside a todo list.
type Task struct {
	ID        int64  `json:"id"`
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
}

// TodoList groups tasks under a titled list on the status page.
type TodoList struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Tasks       []Task    `json:"tasks"`
}

// DerivedStatus computes the list status from its tasks: COMPLETED only
// when there is at least one task and every task is complete. An empty
// list counts as ONGOING.
func (l TodoList) DerivedStatus() ListStatus {
	if len(l.Tasks) == 0 {
		return ListOngoing
	}
	for _, t := range l.Tasks {
		if !t.Completed {
			return ListOngoing
		}
	}
	return ListCompleted
}
