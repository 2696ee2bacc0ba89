// Package netbox is a minimal client for the NetBox REST API: token
// authentication, natural-key lookups against collection endpoints, and
// object creation. It is not a general-purpose API binding; it covers
// exactly what the population pipeline needs.
package netbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Object is the subset of a NetBox API object the pipeline cares about.
type Object struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// listResponse is NetBox's paginated collection envelope.
type listResponse struct {
	Count   int      `json:"count"`
	Results []Object `json:"results"`
}

// Client talks to one NetBox instance.
type Client struct {
	base  *url.URL
	token string
	http  *http.Client
	retry RetryPolicy
	log   *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client for the NetBox instance at baseURL.
func New(baseURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("netbox: invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("netbox: base URL %q must be http or https", baseURL)
	}

	c := &Client{
		base:  u,
		token: token,
		http:  &http.Client{Timeout: 30 * time.Second},
		retry: DefaultRetryPolicy(),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Status performs an authenticated call against /api/status/. Used as a
// setup preflight: bad credentials or an unreachable host surface here
// before any record is attempted.
func (c *Client) Status(ctx context.Context) error {
	return c.retry.Do(ctx, func() error {
		return c.do(ctx, http.MethodGet, "status", nil, nil, nil)
	})
}

// Find queries a collection endpoint (e.g. "dcim/sites") with the given
// filter params and returns the first match, or nil if nothing matched.
func (c *Client) Find(ctx context.Context, resource string, params url.Values) (*Object, error) {
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("limit", "1")

	var list listResponse
	err := c.retry.Do(ctx, func() error {
		return c.do(ctx, http.MethodGet, resource, q, nil, &list)
	})
	if err != nil {
		return nil, err
	}
	if len(list.Results) == 0 {
		return nil, nil
	}
	obj := list.Results[0]
	return &obj, nil
}

// Create POSTs a new object to a collection endpoint and returns the
// created object. Transient failures are retried per the client's policy;
// other failures come back as *APIError for the caller to classify.
func (c *Client) Create(ctx context.Context, resource string, payload map[string]any) (*Object, error) {
	var obj Object
	err := c.retry.Do(ctx, func() error {
		return c.do(ctx, http.MethodPost, resource, nil, payload, &obj)
	})
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// do issues one HTTP request. resource is the path under /api/ without
// leading or trailing slashes.
func (c *Client) do(ctx context.Context, method, resource string, params url.Values, payload, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/api/" + strings.Trim(resource, "/") + "/"
	if params != nil {
		u.RawQuery = params.Encode()
	}

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("netbox: encode %s payload: %w", resource, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("netbox: build request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("netbox: %s %s: %w", method, resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.Debug("api error", "method", method, "resource", resource, "status", resp.StatusCode)
		return &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Resource:   resource,
			Body:       string(detail),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("netbox: decode %s response: %w", resource, err)
		}
	}
	return nil
}
