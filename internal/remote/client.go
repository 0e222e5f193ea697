package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jrnavarro/coursetrack-client/pkg/config"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
)

// Client talks to the tracker backend. Authentication is a session cookie
// set by the login endpoint, carried by the cookie jar on every call, so
// the client holds no credentials of its own after login.
type Client struct {
	http    *http.Client
	baseURL string
	logger  *zap.Logger
}

// New builds a client against the configured backend.
func New(cfg config.RemoteConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("build cookie jar: %w", err)
	}
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout, Jar: jar},
		baseURL: cfg.BaseURL,
		logger:  logger,
	}, nil
}

// apiResponse is the backend's common envelope. Payload-carrying responses
// embed it alongside their own field.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (a apiResponse) outcome() (bool, string) { return a.Success, a.Message }

type outcomeCarrier interface {
	outcome() (bool, string)
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into out. Transport failures, non-2xx statuses, and envelope
// rejections (success=false) all come back as typed errors; the caller
// never has to inspect the raw response.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Status, appErrors.ErrTransport.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return c.rejectionError(req, resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return appErrors.Wrap(err, appErrors.ErrMalformedEntity.Code, appErrors.ErrMalformedEntity.Status, "decode response body")
		}
		if carrier, ok := out.(outcomeCarrier); ok {
			if success, message := carrier.outcome(); !success {
				if message == "" {
					message = appErrors.ErrRemoteRejected.Message
				}
				return appErrors.Clone(appErrors.ErrRemoteRejected, message)
			}
		}
	}
	return nil
}

func (c *Client) rejectionError(req *http.Request, resp *http.Response) error {
	var envelope apiResponse
	_ = json.NewDecoder(resp.Body).Decode(&envelope)

	c.logger.Sugar().Warnw("backend rejected request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"message", envelope.Message,
	)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return appErrors.Clone(appErrors.ErrUnauthorized, envelope.Message)
	case http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, envelope.Message)
	}
	message := envelope.Message
	if message == "" {
		message = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}
	return appErrors.Clone(appErrors.ErrRemoteRejected, message)
}
