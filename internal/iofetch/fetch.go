// Package iofetch downloads pages over HTTP.
package iofetch

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vgarchive/vgdb/pkg/config"
)

// maxBodySize caps a single page download.
const maxBodySize = 16 << 20

// Fetcher returns the body of a page.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// HTTPDoer is the part of http.Client used by the fetcher.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type httpFetcher struct {
	client    HTTPDoer
	userAgent string
}

// New creates a Fetcher with the timeout and User-Agent from cfg.
func New(cfg config.ImportConfig) Fetcher {
	client := &http.Client{
		Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
	}
	return NewWithClient(client, cfg.UserAgent)
}

// NewWithClient creates a Fetcher on top of an arbitrary HTTP client.
func NewWithClient(client HTTPDoer, userAgent string) Fetcher {
	return &httpFetcher{client: client, userAgent: userAgent}
}

// Get downloads url. Responses outside of 2xx return *HTTPError.
func (f *httpFetcher) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, FetchError(url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, FetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, StatusError(&HTTPError{URL: url, Status: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, FetchError(url, err)
	}
	slog.Debug("Page downloaded",
		"url", url,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return body, nil
}
