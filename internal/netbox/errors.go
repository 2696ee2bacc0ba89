package netbox

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// APIError is a non-2xx response from the NetBox API.
type APIError struct {
	StatusCode int
	Method     string
	Resource   string
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("netbox: %s %s returned %d: %s", e.Method, e.Resource, e.StatusCode, body)
}

// duplicateIndicators are substrings NetBox uses in validation errors for
// uniqueness violations. A create that trips one of these means the object
// already exists, which is an acceptable outcome for an idempotent run.
var duplicateIndicators = []string{
	"already exists",
	"duplicate",
	"must be unique",
	"is violated",
	"constraint",
}

// IsDuplicate reports whether err is a rejection caused by a uniqueness
// violation on the remote side.
func IsDuplicate(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode < 400 || apiErr.StatusCode >= 500 {
		return false
	}
	body := strings.ToLower(apiErr.Body)
	for _, indicator := range duplicateIndicators {
		if strings.Contains(body, indicator) {
			return true
		}
	}
	return false
}

// IsAuth reports whether err indicates bad or missing credentials.
func IsAuth(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsTransient reports whether err is worth retrying: rate limiting,
// server-side errors, timeouts and connection failures.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429 || apiErr.StatusCode >= 500
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	// url.Error wraps dial failures without implementing net.Error in
	// all cases; fall back to a connection-level check.
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
