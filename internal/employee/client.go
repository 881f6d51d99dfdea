package employee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL   = "https://backend.jotish.in/backend_dev"
	tableDataPath    = "/gettabledata.php"
	maxResponseBytes = 16 << 20
)

// The upstream expects these literal credentials in every request body. They
// are unrelated to the login gate credentials.
const (
	upstreamUsername = "test"
	upstreamPassword = "123456"
)

type tableDataRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("table data request failed with status %d", e.StatusCode)
}

// Client talks to the remote table-data endpoint. It performs exactly one
// request per call: no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchTableData posts the fixed credential payload and returns the raw body.
func (c *Client) FetchTableData(ctx context.Context) ([]byte, error) {
	payload, err := json.Marshal(tableDataRequest{
		Username: upstreamUsername,
		Password: upstreamPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode table data request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tableDataPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build table data request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("table data request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read table data response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
