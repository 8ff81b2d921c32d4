package client

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"bundlescan/pkg/scanner"
	"bundlescan/pkg/utils"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// Fetcher downloads bundles and pages for scanning.
type Fetcher struct {
	client *resty.Client
}

func NewFetcher(config utils.FetchConfig) (*Fetcher, error) {
	r := resty.New()

	r.SetTransport(NewCustomTransport(config.VerifyTLS))

	if config.Timeout != "" {
		timeout, err := time.ParseDuration(config.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", config.Timeout, err)
		}
		r.SetTimeout(timeout)
	}
	r.SetRetryCount(config.MaxRetries)

	if config.UserAgent != "" {
		r.SetHeader("User-Agent", config.UserAgent)
	}
	r.SetHeaders(config.Headers)

	if config.Proxy != "" {
		r.SetProxy(config.Proxy)
	}

	if config.Cookies != "" {
		r.SetCookies(ParseCookies(config.Cookies))
	}
	return &Fetcher{client: r}, nil
}

// Get performs a GET and fails on non-2xx responses.
func (f *Fetcher) Get(ctx context.Context, url string) (*resty.Response, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &scanner.IOError{Path: url, Err: err}
	}
	if resp.IsError() {
		return nil, &scanner.IOError{Path: url, Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}
	return resp, nil
}

// Fetch returns the response body as text. A charset declared in the
// Content-Type header is honoured; anything else is decoded as UTF-8 with
// invalid bytes replaced.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.Get(ctx, url)
	if err != nil {
		return "", err
	}

	text, err := scanner.Decode(bytes.NewReader(resp.Body()), declaredEncoding(resp.Header()))
	if err != nil {
		return "", &scanner.IOError{Path: url, Err: err}
	}
	return text, nil
}

// Download saves the raw response body to path.
func (f *Fetcher) Download(ctx context.Context, url, path string) (int, error) {
	resp, err := f.Get(ctx, url)
	if err != nil {
		return 0, err
	}

	body := resp.Body()
	if err := utils.WriteFile(path, body); err != nil {
		return 0, &scanner.IOError{Path: path, Err: err}
	}
	return len(body), nil
}

func declaredEncoding(h http.Header) encoding.Encoding {
	_, params, err := mime.ParseMediaType(h.Get("Content-Type"))
	if err != nil {
		return nil
	}
	label, ok := params["charset"]
	if !ok {
		return nil
	}
	enc, _ := charset.Lookup(label)
	return enc
}

// IsRemote reports whether source should be fetched rather than read from disk.
func IsRemote(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
