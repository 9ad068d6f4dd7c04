// Package http provides HTTP implementations of nps.Fetcher and
// nps.PlacesClient.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/nps"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent identifies the tool to upstream servers.
const DefaultUserAgent = "nps/1.0 (+https://github.com/fwojciec/nps)"

// Ensure Fetcher implements nps.Fetcher at compile time.
var _ nps.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Pages served in a non-UTF-8 charset are decoded to UTF-8.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Option configures a Fetcher or PlacesClient.
type Option func(*options)

type options struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithClient sets the underlying HTTP client. Its Timeout is overridden
// by WithTimeout.
func WithClient(c *http.Client) Option {
	return func(o *options) {
		o.client = c
	}
}

func newOptions(opts []Option) options {
	o := options{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	client := &http.Client{}
	if o.client != nil {
		*client = *o.client
	}
	client.Timeout = o.timeout
	o.client = client
	return o
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	o := newOptions(opts)
	return &Fetcher{
		client:    o.client,
		userAgent: o.userAgent,
	}
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", nps.Errorf(nps.EUPSTREAM, "HTTP %d for %s", resp.StatusCode, url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	// charset.NewReader reports io.EOF for an empty body.
	if len(raw) == 0 {
		return "", nil
	}

	body, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}

	html, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}

	return string(html), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
