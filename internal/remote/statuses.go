package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrnavarro/coursetrack-client/internal/models"
)

// TodoListPayload is the add/edit request body for a todo list. Status is
// deliberately absent: it is derived from tasks on the client and never
// persisted.
type TodoListPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskPayload is the add request body for a task.
type TaskPayload struct {
	Label string `json:"label"`
}

// ListTodoLists returns every todo list with its tasks.
func (c *Client) ListTodoLists(ctx context.Context) ([]models.TodoList, error) {
	var resp struct {
		apiResponse
		Statuses []models.TodoList `json:"statuses"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/statuses/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Statuses, nil
}

// CreateTodoList adds a list and returns the stored entity.
func (c *Client) CreateTodoList(ctx context.Context, payload TodoListPayload) (*models.TodoList, error) {
	var resp struct {
		apiResponse
		Status models.TodoList `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/statuses/add/", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Status, nil
}

// UpdateTodoList edits a list's title/description and returns the stored
// entity.
func (c *Client) UpdateTodoList(ctx context.Context, id int64, payload TodoListPayload) (*models.TodoList, error) {
	var resp struct {
		apiResponse
		Status models.TodoList `json:"status"`
	}
	path := fmt.Sprintf("/api/statuses/edit/%d/", id)
	if err := c.doJSON(ctx, http.MethodPut, path, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Status, nil
}

// DeleteTodoList removes a list and its tasks.
func (c *Client) DeleteTodoList(ctx context.Context, id int64) error {
	var resp apiResponse
	path := fmt.Sprintf("/api/statuses/delete/%d/", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, &resp)
}

// AddTask appends a task to a list and returns the stored task.
func (c *Client) AddTask(ctx context.Context, listID int64, payload TaskPayload) (*models.Task, error) {
	var resp struct {
		apiResponse
		Task models.Task `json:"task"`
	}
	path := fmt.Sprintf("/api/tasks/add/%d/", listID)
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// ToggleTask flips a task's completed flag through its dedicated endpoint
// and returns the stored task.
func (c *Client) ToggleTask(ctx context.Context, taskID int64) (*models.Task, error) {
	var resp struct {
		apiResponse
		Task models.Task `json:"task"`
	}
	path := fmt.Sprintf("/api/tasks/toggle/%d/", taskID)
	if err := c.doJSON(ctx, http.MethodPut, path, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID int64) error {
	var resp apiResponse
	path := fmt.Sprintf("/api/tasks/delete/%d/", taskID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, &resp)
}
