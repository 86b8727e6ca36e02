package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"
)

// LoaderOptions configures how documents are fetched.
type LoaderOptions struct {
	// FileSystem serves SourceKindFS locations.
	FileSystem fs.FS
	// HTTPClient fetches SourceKindURL locations. Nil disables HTTP unless
	// AllowHTTPFallback is set.
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
}

// LoaderOption mutates LoaderOptions.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects the fs.FS used for SourceFromFS sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables HTTP loading with a default client.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// Load reads the raw bytes of the document at src.
func Load(ctx context.Context, src Source, options ...LoaderOption) ([]byte, error) {
	if src == nil {
		return nil, errors.New("openapi: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts := LoaderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case SourceKindFile:
		data, err = os.ReadFile(src.Location())
	case SourceKindFS:
		if opts.FileSystem == nil {
			return nil, errors.New("openapi: filesystem is not configured")
		}
		data, err = fs.ReadFile(opts.FileSystem, src.Location())
	case SourceKindURL:
		data, err = loadHTTP(ctx, opts, src.Location())
	default:
		err = fmt.Errorf("unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", src.Location(), err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("openapi: document %s is empty", src.Location())
	}
	return data, nil
}

func loadHTTP(ctx context.Context, opts LoaderOptions, location string) ([]byte, error) {
	client := opts.HTTPClient
	switch {
	case client != nil:
		if opts.RequestTimeout > 0 && client.Timeout == 0 {
			clone := *client
			clone.Timeout = opts.RequestTimeout
			client = &clone
		}
	case opts.AllowHTTPFallback:
		client = &http.Client{Timeout: opts.RequestTimeout}
	default:
		return nil, errors.New("http support disabled")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
