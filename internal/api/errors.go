package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
)

// ErrEmptyEndpoint is returned before dispatch when no endpoint is given.
var ErrEmptyEndpoint = errors.New("api: endpoint cannot be empty")

// NetworkError reports a transport failure: no HTTP status is available.
// Context cancellation and rate-limit waits that fail surface as NetworkError.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	Method string
	URL    string
	Status int
	Body   []byte
	Header http.Header
}

func (e *HTTPStatusError) Error() string {
	text := http.StatusText(e.Status)
	if text == "" {
		text = "unknown status"
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, text)
}

// ContentType returns the response content type, if any.
func (e *HTTPStatusError) ContentType() string {
	if e.Header == nil {
		return ""
	}
	return e.Header.Get("Content-Type")
}

// DecodeBody decodes the error body as JSON into v.
func (e *HTTPStatusError) DecodeBody(v any) error {
	if len(e.Body) == 0 {
		return errors.New("api: empty error body")
	}
	return sonic.ConfigStd.Unmarshal(e.Body, v)
}

// IsNetworkError reports whether err is, or wraps, a NetworkError.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// StatusCode extracts the HTTP status from an HTTPStatusError in err's chain.
func StatusCode(err error) (int, bool) {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status, true
	}
	return 0, false
}
