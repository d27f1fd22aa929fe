package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public SWAPI mirror the client talks to.
const DefaultBaseURL = "https://swapi.info/api/"

type API struct {
	client  *http.Client
	baseURL string
}

// Option configures an API.
type Option func(*API)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(a *API) {
		a.client.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying http client.
func WithHTTPClient(client *http.Client) Option {
	return func(a *API) {
		if client != nil {
			a.client = client
		}
	}
}

func NewAPI(baseURL string, opts ...Option) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	a := &API{client: &http.Client{Timeout: 30 * time.Second}, baseURL: baseURL}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *API) BaseURL() string {
	return a.baseURL
}

// Resolve turns an endpoint path or an absolute resource URL into a request URL.
// Leading slashes on relative paths are dropped so "/films" and "films" hit the
// same endpoint.
func (a *API) Resolve(path string) string {
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	return a.baseURL + strings.TrimLeft(path, "/")
}

// Get issues a GET for path (relative to the base URL, or absolute) and decodes
// the JSON body into v.
func (a *API) Get(ctx context.Context, path string, params url.Values, v any) error {
	target := a.Resolve(path)
	if params != nil {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: target, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", target, err)
	}
	return nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}
