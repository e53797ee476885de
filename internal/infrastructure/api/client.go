package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/you/expensefront/domain"
)

// Client is the shared REST client every endpoint group builds on. It owns
// base URL resolution, JSON codec, bearer injection and error normalization.
// It keeps no session state: the token is passed per call.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a REST client for the expense backend
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// errorBody matches the backend's error payloads. Handlers emit either an
// "error" or a "message" field depending on the code path.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs a JSON request. A non-2xx response or transport failure is
// normalized to *domain.APIError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.APIError{Message: "could not reach the server"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// normalizeError turns an error response into a typed APIError, preferring
// the server-supplied message and falling back to a generic one.
func normalizeError(resp *http.Response) error {
	apiErr := &domain.APIError{
		Status:  resp.StatusCode,
		Message: genericMessage(resp.StatusCode),
	}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		} else if body.Message != "" {
			apiErr.Message = body.Message
		}
	}
	return apiErr
}

func genericMessage(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Not authorized"
	case http.StatusForbidden:
		return "Access denied"
	case http.StatusNotFound:
		return "Resource not found"
	default:
		return "Something went wrong"
	}
}
