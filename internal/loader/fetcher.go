package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Fetcher opens timetable data from a local path or an http(s) URL
type Fetcher interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// SourceFetcher implements Fetcher for files and http(s) URLs
type SourceFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

// NewSourceFetcher creates a fetcher with the given HTTP timeout and response limit
func NewSourceFetcher(timeout time.Duration, maxBytes int64) *SourceFetcher {
	return &SourceFetcher{
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: maxBytes,
	}
}

// Open returns the contents at location.
// Response bodies are cut off after MaxBytes.
func (f *SourceFetcher) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if !IsRemote(location) {
		file, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", location, err)
		}
		return file, nil
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	// Never log query strings
	log := zap.L().With(zap.String("url", u.Scheme+"://"+u.Host+u.Path))
	log.Debug("downloading timetable data")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error during fetch: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		log.Warn("server returned error status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("server returned unexpected status: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var reader io.Reader = resp.Body
	if f.MaxBytes > 0 {
		reader = io.LimitReader(resp.Body, f.MaxBytes)
	}

	return &limitedReadCloser{Reader: reader, Closer: resp.Body}, nil
}

// IsRemote reports whether location is an http(s) URL
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// limitedReadCloser reads through the limit but closes the underlying body
type limitedReadCloser struct {
	io.Reader
	io.Closer
}
