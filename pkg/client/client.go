// Package client provides a typed HTTP client for the sentinote API. It is
// used by the end-to-end tests and by programs that embed sentinote access.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sentinote/sentinote/pkg/models"
	"github.com/sentinote/sentinote/pkg/notes"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: status=%d, message=%s", e.StatusCode, e.Message)
}

// Client provides typed access to the sentinote REST API. Instances are
// safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an API client. baseURL includes protocol and host
// ("http://localhost:8080") without a trailing slash or path prefix.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest performs an HTTP request with proper headers.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}

// decodeResponse decodes the JSON response into target, converting non-2xx
// statuses into an [APIError] carrying the server's error message.
func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var payload struct {
			Error string `json:"error"`
		}
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, &payload); err != nil || payload.Error == "" {
			payload.Error = string(body)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Health checks the health status of the server.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var result map[string]any
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateNote submits text for classification and storage and returns the
// persisted note, sentiment included.
func (c *Client) CreateNote(ctx context.Context, text string) (*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/notes", map[string]string{"text": text})
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetNote retrieves a note by ID. A missing note comes back as an
// [APIError] with status 404.
func (c *Client) GetNote(ctx context.Context, id models.NoteID) (*models.Note, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("/api/notes/%s", id), nil)
	if err != nil {
		return nil, err
	}

	var result models.Note
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// PageOptions narrows a list or search request. Zero values mean server
// defaults: first page, default limit.
type PageOptions struct {
	Limit  int
	Cursor string
}

func (o PageOptions) query() url.Values {
	values := url.Values{}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Cursor != "" {
		values.Set("cursor", o.Cursor)
	}
	return values
}

// ListNotes returns a page of notes, newest first.
func (c *Client) ListNotes(ctx context.Context, opts PageOptions) (*notes.Page, error) {
	path := "/api/notes"
	if query := opts.query().Encode(); query != "" {
		path += "?" + query
	}
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result notes.Page
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// SearchNotes returns a page of notes whose text begins with query,
// ordered by text.
func (c *Client) SearchNotes(ctx context.Context, query string, opts PageOptions) (*notes.Page, error) {
	values := opts.query()
	values.Set("query", query)
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/notes/search?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var result notes.Page
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
