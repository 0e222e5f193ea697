package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrnavarro/coursetrack-client/internal/models"
)

// SubjectPayload is the add/edit request body for a subject.
type SubjectPayload struct {
	SubjectName string                 `json:"subject_name"`
	Category    models.SubjectCategory `json:"category"`
	Status      models.SubjectStatus   `json:"status"`
	Priority    models.SubjectPriority `json:"priority"`
	Grade       *string                `json:"grade,omitempty"`
	Semester    *string                `json:"semester,omitempty"`
	SchoolYear  *string                `json:"school_year,omitempty"`
	Description *string                `json:"description,omitempty"`
}

// ListSubjects returns the full subject collection.
func (c *Client) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	var resp struct {
		apiResponse
		Subjects []models.Subject `json:"subjects"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/subjects/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Subjects, nil
}

// CreateSubject adds a subject and returns the stored entity.
func (c *Client) CreateSubject(ctx context.Context, payload SubjectPayload) (*models.Subject, error) {
	var resp struct {
		apiResponse
		Subject models.Subject `json:"subject"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/subjects/add/", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Subject, nil
}

// UpdateSubject edits a subject and returns the stored entity.
func (c *Client) UpdateSubject(ctx context.Context, id int64, payload SubjectPayload) (*models.Subject, error) {
	var resp struct {
		apiResponse
		Subject models.Subject `json:"subject"`
	}
	path := fmt.Sprintf("/api/subjects/edit/%d/", id)
	if err := c.doJSON(ctx, http.MethodPatch, path, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Subject, nil
}

// DeleteSubject removes a subject. The backend exposes this as a POST on a
// non-API path.
func (c *Client) DeleteSubject(ctx context.Context, id int64) error {
	var resp apiResponse
	path := fmt.Sprintf("/delete-subject/%d/", id)
	return c.doJSON(ctx, http.MethodPost, path, struct{}{}, &resp)
}
