// Package client is the Go client for the faredrop HTTP API, used by fdt.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
)

const (
	apiPrefix        = "/api/v1"
	defaultUserAgent = "faredrop-client"
)

// Client calls the faredrop API on behalf of one user.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	hc        *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
		hc:        &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int      `json:"-"`
	Message    string   `json:"error"`
	Required   []string `json:"required,omitempty"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, e.Message)
	if len(e.Required) > 0 {
		msg += " (missing: " + strings.Join(e.Required, ", ") + ")"
	}
	return msg
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// call describes one API round trip. in and out are JSON bodies and may be nil.
type call struct {
	method string
	path   []string // segments under /api/v1, each path-escaped
	query  url.Values
	in     any
	out    any
}

func (c *Client) send(ctx context.Context, rt call) error {
	segs := make([]string, len(rt.path))
	for i, p := range rt.path {
		segs[i] = url.PathEscape(p)
	}
	target := c.baseURL + apiPrefix + "/" + strings.Join(segs, "/")
	if len(rt.query) > 0 {
		target += "?" + rt.query.Encode()
	}

	var body io.Reader = http.NoBody
	if rt.in != nil {
		data, err := json.Marshal(rt.in)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, rt.method, target, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if rt.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if errors.Is(err, syscall.ECONNREFUSED) {
			return fmt.Errorf("API server not running at %s", c.baseURL)
		}
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(payload, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(payload))
		}
		return apiErr
	}

	if rt.out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, rt.out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
