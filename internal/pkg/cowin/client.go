package cowin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

// ErrFetchFailed is the single failure outcome of a fetch. Every FetchError matches it.
var ErrFetchFailed = errors.New("vaccination data fetch failed")

// FetchError records why a fetch failed. StatusCode is 0 when no response was received.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("vaccination data fetch failed: upstream status %d", e.StatusCode)
	}
	return fmt.Sprintf("vaccination data fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

// Client fetches vaccination snapshots from one fixed endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for url. A zero timeout keeps the transport default.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchSnapshot issues one GET and transforms the body. It does not retry.
func (c *Client) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	var raw RawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		log.Warnf("[CowinClient] Failed to decode response from %s: %v", c.url, err)
		return nil, &FetchError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return Transform(raw), nil
}
