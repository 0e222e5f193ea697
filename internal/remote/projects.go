package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrnavarro/coursetrack-client/internal/models"
)

// ProjectPayload is the add/edit request body for a project.
type ProjectPayload struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
}

// ListProjects returns the full project collection.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var resp struct {
		apiResponse
		Projects []models.Project `json:"projects"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// CreateProject adds a project and returns the stored entity.
func (c *Client) CreateProject(ctx context.Context, payload ProjectPayload) (*models.Project, error) {
	var resp struct {
		apiResponse
		Project models.Project `json:"project"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/add_project/", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Project, nil
}

// UpdateProject edits a project and returns the stored entity. The backend
// uses POST rather than PATCH for project edits.
func (c *Client) UpdateProject(ctx context.Context, id int64, payload ProjectPayload) (*models.Project, error) {
	var resp struct {
		apiResponse
		Project models.Project `json:"project"`
	}
	path := fmt.Sprintf("/api/projects/edit/%d/", id)
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Project, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	var resp apiResponse
	path := fmt.Sprintf("/api/projects/delete/%d/", id)
	return c.doJSON(ctx, http.MethodPost, path, struct{}{}, &resp)
}
