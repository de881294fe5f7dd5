package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// Default fetcher settings.
const (
	// DefaultTimeout bounds a single page request.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent identifies telscan in HTTP requests.
	DefaultUserAgent = "telscan/1.0 (+https://github.com/nao1215/telscan)"

	// DefaultMaxBodySize limits how much of a page is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

var (
	// ErrEmptyURL is returned when Fetch is called without a URL.
	ErrEmptyURL = errors.New("empty URL")

	// ErrFetch matches every failure to retrieve a page, including
	// *StatusError, with errors.Is.
	ErrFetch = errors.New("fetch failed")
)

// StatusError is returned when the server answers with a non-2xx status.
type StatusError struct {
	// URL is the requested page.
	URL string

	// StatusCode is the HTTP status received.
	StatusCode int
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Is reports whether target is ErrFetch.
func (e *StatusError) Is(target error) bool {
	return target == ErrFetch
}

// Page is a fetched web page.
type Page struct {
	// URL is the final request URL after scheme defaulting.
	URL string

	// StatusCode is the HTTP status code.
	StatusCode int

	// ContentType is the Content-Type response header.
	ContentType string

	// Body is the page markup decoded to UTF-8.
	Body string
}

// Fetcher retrieves pages over HTTP.
// A Fetcher is safe for concurrent use once created; options are applied
// only in NewFetcher.
type Fetcher struct {
	// client performs the requests. It is owned by the Fetcher.
	client *http.Client

	// timeout bounds a whole request, including reading the body.
	timeout time.Duration

	// userAgent is sent as the User-Agent header.
	userAgent string

	// maxBodySize is the number of body bytes read; the rest is discarded.
	maxBodySize int64

	// headers are set on every request after the defaults, so they can
	// override Accept-Language and similar headers.
	headers map[string]string

	// cookie is sent verbatim as the Cookie header when non-empty.
	cookie string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets the HTTP client used for requests. The Fetcher works
// on a shallow copy, so the caller's client is never modified. The client's
// own Timeout is kept if it is non-zero; otherwise the Fetcher timeout is
// applied to the copy.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithTimeout sets the per-request timeout.
// It has no effect on a client passed with WithHTTPClient whose own
// Timeout is already set.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum number of body bytes read.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithHeaders adds custom request headers.
func WithHeaders(headers map[string]string) FetcherOption {
	return func(f *Fetcher) {
		if f.headers == nil {
			f.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			f.headers[k] = v
		}
	}
}

// WithCookie sets the Cookie header.
func WithCookie(cookie string) FetcherOption {
	return func(f *Fetcher) {
		f.cookie = cookie
	}
}

// NewFetcher creates a Fetcher with default settings.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, opt := range opts {
		opt(f)
	}

	// The client is copied so a caller-owned client such as
	// http.DefaultClient never gets its Timeout changed.
	client := &http.Client{}
	if f.client != nil {
		c := *f.client
		client = &c
	}
	if client.Timeout == 0 {
		client.Timeout = f.timeout
	}
	f.client = client

	return f
}

// Fetch retrieves rawURL and returns its body decoded to UTF-8.
// A URL without a scheme is requested over https.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en-US;q=0.7,en;q=0.3")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}
	if f.cookie != "" {
		req.Header.Set("Cookie", f.cookie)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body of %s: %w", ErrFetch, target, err)
	}

	body, err := decodeBody(raw, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode body of %s: %w", ErrFetch, target, err)
	}

	return &Page{
		URL:         target,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}

// decodeBody converts raw to UTF-8 using the Content-Type charset or,
// failing that, the encoding sniffed from the markup. An empty body is a
// valid page with no markup.
//
// Japanese business pages are often Shift_JIS or EUC-JP.
func decodeBody(raw []byte, contentType string) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	r, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", fmt.Errorf("failed to detect charset: %w", err)
	}

	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// normalizeURL trims rawURL and defaults its scheme to https.
func normalizeURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrEmptyURL
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid URL %q: missing host", rawURL)
	}
	return u.String(), nil
}
