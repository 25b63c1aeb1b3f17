package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every outbound request. Archive downloads can be
// tens of megabytes, so this is deliberately more generous than a typical
// metadata-API timeout.
const DefaultTimeout = 60 * time.Second

var (
	// ErrNotFound is returned when the remote service responds with 404.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport-level failures (timeouts,
	// connection errors, DNS failures).
	ErrNetwork = errors.New("network error")
)

// StatusError is returned for any non-200, non-404 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// Client provides shared HTTP functionality for the registry and hosting
// API clients. It applies default headers (notably User-Agent) to every
// request and maps response statuses onto sentinel errors.
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given request timeout and default
// headers. Headers are applied to all requests made through this client.
// A timeout of 0 falls back to [DefaultTimeout].
func NewClient(timeout time.Duration, headers map[string]string) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		headers: headers,
	}
}

// GetJSON performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.Stream(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", url, err)
	}
	return nil
}

// Stream performs an HTTP GET request and returns the raw response body.
// The caller owns the returned ReadCloser and must close it.
//
// Status handling: 404 maps to [ErrNotFound], any other non-200 status to
// a [StatusError]; both include the request URL.
func (c *Client) Stream(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	default:
		code := resp.StatusCode
		resp.Body.Close()
		return nil, &StatusError{URL: url, Code: code}
	}
}
