// Package network provides the HTTP client shared by the catalog, downloads and the audio player.
package network

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bedtime-cli/bedtime/constant"
	"golang.org/x/net/http2"
)

// Client is shared across the application so connections to the catalog and
// audio hosts are pooled. Per-request deadlines come from contexts.
var Client = &http.Client{
	Timeout:   5 * time.Minute,
	Transport: newTransport(),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 20
	t.MaxIdleConnsPerHost = 10
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = time.Second
	if err := http2.ConfigureTransport(t); err != nil {
		// HTTP/1.1 keeps working without it.
		t.ForceAttemptHTTP2 = false
	}
	return t
}

// StatusError is returned when a server answers with an unexpected status code.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// NewRequest builds a request carrying the application's User-Agent.
func NewRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	return req, nil
}

// Get performs a GET request and returns the body of a 200 response.
// The caller must close the body.
func Get(ctx context.Context, url string, headers map[string]string) (io.ReadCloser, error) {
	req, err := NewRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := Client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	return resp.Body, nil
}
