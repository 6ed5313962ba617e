package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/fwojciec/arenadl"
	"golang.org/x/net/publicsuffix"
)

// Defaults for asset requests.
const (
	DefaultFetchTimeout = 30 * time.Second
	DefaultMaxRedirects = 5
	DefaultMaxAssetSize = int64(256 << 20)

	// Some image hosts reject requests that do not look like a browser.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
	DefaultAccept    = "image/avif,image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8"
	DefaultReferer   = "https://www.are.na/"
)

// Ensure AssetFetcher implements arenadl.AssetFetcher at compile time.
var _ arenadl.AssetFetcher = (*AssetFetcher)(nil)

// AssetFetcher downloads binary assets with browser-like requests.
type AssetFetcher struct {
	client       *http.Client
	timeout      time.Duration
	maxRedirects int
	maxSize      int64
	userAgent    string
	referer      string
}

// Option configures an AssetFetcher.
type Option func(*AssetFetcher)

// WithTimeout sets the timeout for a single request, including redirects
// and reading the body.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *AssetFetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets how many redirects are followed.
func WithMaxRedirects(n int) Option {
	return func(f *AssetFetcher) {
		f.maxRedirects = n
	}
}

// WithMaxSize caps the number of bytes read from a response.
func WithMaxSize(n int64) Option {
	return func(f *AssetFetcher) {
		f.maxSize = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *AssetFetcher) {
		f.userAgent = ua
	}
}

// WithReferer overrides the Referer header.
func WithReferer(referer string) Option {
	return func(f *AssetFetcher) {
		f.referer = referer
	}
}

// NewAssetFetcher creates a new AssetFetcher.
func NewAssetFetcher(opts ...Option) *AssetFetcher {
	f := &AssetFetcher{
		timeout:      DefaultFetchTimeout,
		maxRedirects: DefaultMaxRedirects,
		maxSize:      DefaultMaxAssetSize,
		userAgent:    DefaultUserAgent,
		referer:      DefaultReferer,
	}
	for _, opt := range opts {
		opt(f)
	}

	// cookiejar.New only fails on invalid options.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})

	f.client = &http.Client{
		Timeout: f.timeout,
		Jar:     jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > f.maxRedirects {
				return fmt.Errorf("stopped after %d redirects", f.maxRedirects)
			}
			return nil
		},
	}

	return f
}

// ErrEmptyBody is returned when the server answers with no content.
var ErrEmptyBody = errors.New("empty response body")

// Fetch downloads the asset at url and returns its bytes.
//
// 401/403 return EUNAUTHORIZED, 404 returns ENOTFOUND and other 4xx
// responses except 408 and 429 return EINVALID; callers treat those as not
// worth retrying. Any other failure, including an empty body, is a plain
// error.
func (f *AssetFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, arenadl.Errorf(arenadl.EINVALID, "invalid asset URL %q", url)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", DefaultAccept)
	if f.referer != "" {
		req.Header.Set("Referer", f.referer)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, assetStatusError(resp, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(body)) > f.maxSize {
		return nil, arenadl.Errorf(arenadl.EINVALID, "asset %s exceeds %d bytes", url, f.maxSize)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%s: %w", url, ErrEmptyBody)
	}

	return body, nil
}

func assetStatusError(resp *http.Response, url string) error {
	code := resp.StatusCode
	if code >= 400 && code < 500 && code != http.StatusRequestTimeout && code != http.StatusTooManyRequests {
		if code == http.StatusUnauthorized || code == http.StatusForbidden || code == http.StatusNotFound {
			return statusError(resp, "asset "+url)
		}
		return arenadl.Errorf(arenadl.EINVALID, "asset %s: HTTP %d", url, code)
	}
	return fmt.Errorf("asset %s: HTTP %d", url, code)
}
