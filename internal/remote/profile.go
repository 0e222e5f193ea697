package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/jrnavarro/coursetrack-client/internal/models"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
)

// PictureUpload is an optional profile picture attachment.
type PictureUpload struct {
	Filename string
	Reader   io.Reader
}

// ProfilePayload is the multipart profile update body. Nil fields are
// omitted so the backend keeps their stored values.
type ProfilePayload struct {
	Address *string
	School  *string
	Course  *string
	Bio     *string
	Picture *PictureUpload
}

// GetProfile returns the profile for a user. The endpoint returns the
// profile fields directly, without the success envelope.
func (c *Client) GetProfile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	var profile models.UserProfile
	path := fmt.Sprintf("/profile/%d/", userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile submits the multipart form, including the picture when
// present, and returns the stored profile.
func (c *Client) UpdateProfile(ctx context.Context, userID int64, payload ProfilePayload) (*models.UserProfile, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]*string{
		"address": payload.Address,
		"school":  payload.School,
		"course":  payload.Course,
		"bio":     payload.Bio,
	}
	for name, value := range fields {
		if value == nil {
			continue
		}
		if err := writer.WriteField(name, *value); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode profile form")
		}
	}
	if payload.Picture != nil {
		part, err := writer.CreateFormFile("profile_pic", payload.Picture.Filename)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode profile picture")
		}
		if _, err := io.Copy(part, payload.Picture.Reader); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "read profile picture")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "finalize profile form")
	}

	path := fmt.Sprintf("/profile/%d/", userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var profile models.UserProfile
	if err := c.send(req, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
