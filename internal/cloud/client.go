// Package cloud is the client for the remote JSON document store used for
// cross-device sync. The service is a black box: one document holds the full
// dashboard snapshot, authorized by a static master key header. This package
// only consumes the contract, it never interprets the snapshot.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/uneeddev/agencydesk/internal/models"
)

// DefaultBaseURL is the production document-store endpoint.
const DefaultBaseURL = "https://api.jsonbin.io/v3/b"

// ErrNotFound is returned when the remote document does not exist or the
// response carries no record.
var ErrNotFound = errors.New("cloud document not found")

// Client talks to the document store over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client against baseURL (DefaultBaseURL when empty).
// Requests carry a timeout so a hung network call cannot leave a sync
// in flight forever.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// fetchResponse is the wire shape of a document read.
type fetchResponse struct {
	Record *models.Snapshot `json:"record"`
}

// createResponse is the wire shape of a successful document creation.
type createResponse struct {
	Metadata struct {
		ID string `json:"id"`
	} `json:"metadata"`
}

// errorResponse is the wire shape of a failed request.
type errorResponse struct {
	Message string `json:"message"`
}

// Fetch retrieves the snapshot stored under binID.
// Returns ErrNotFound on a non-success status or an empty record.
func (c *Client) Fetch(ctx context.Context, binID, apiKey string) (*models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+binID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch request: %w", err)
	}
	req.Header.Set("X-Master-Key", apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrNotFound, resp.StatusCode)
	}

	var body fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode fetch response: %w", err)
	}
	if body.Record == nil {
		return nil, ErrNotFound
	}
	return body.Record, nil
}

// Update replaces the snapshot stored under binID.
func (c *Client) Update(ctx context.Context, binID, apiKey string, snap models.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/"+binID, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Master-Key", apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("update rejected: status %d", resp.StatusCode)
	}
	return nil
}

// Create mints a new document named name holding snap and returns its ID.
// The remote error message is surfaced verbatim so the admin sees exactly
// what the provider rejected.
func (c *Client) Create(ctx context.Context, apiKey, name string, snap models.Snapshot) (string, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Master-Key", apiKey)
	req.Header.Set("X-Bin-Name", name)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("create failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var remote errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&remote); err == nil && remote.Message != "" {
			return "", fmt.Errorf("create rejected: %s", remote.Message)
		}
		return "", fmt.Errorf("create rejected: status %d", resp.StatusCode)
	}

	var body createResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode create response: %w", err)
	}
	if body.Metadata.ID == "" {
		return "", errors.New("create response carried no document id")
	}
	return body.Metadata.ID, nil
}
