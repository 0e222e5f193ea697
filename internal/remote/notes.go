package remote

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jrnavarro/coursetrack-client/internal/models"
)

// NotePayload is the add/edit request body for a note.
type NotePayload struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	SubjectID int64  `json:"subject"`
}

// FetchNoteGroups returns all notes pre-grouped by subject.
func (c *Client) FetchNoteGroups(ctx context.Context) ([]models.NoteGroup, error) {
	var resp struct {
		apiResponse
		Notes []models.NoteGroup `json:"notes"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/notes/fetch/", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

// CreateNote adds a note to a subject and returns the stored entity.
func (c *Client) CreateNote(ctx context.Context, payload NotePayload) (*models.Note, error) {
	var resp struct {
		apiResponse
		Note models.Note `json:"note"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/notes/", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Note, nil
}

// UpdateNote edits a note and returns the stored entity.
func (c *Client) UpdateNote(ctx context.Context, id int64, payload NotePayload) (*models.Note, error) {
	var resp struct {
		apiResponse
		Note models.Note `json:"note"`
	}
	path := fmt.Sprintf("/api/notes/edit/%d/", id)
	if err := c.doJSON(ctx, http.MethodPatch, path, payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Note, nil
}

// DeleteNote removes a note.
func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	var resp apiResponse
	path := fmt.Sprintf("/api/notes/delete/%d/", id)
	return c.doJSON(ctx, http.MethodDelete, path, nil, &resp)
}
