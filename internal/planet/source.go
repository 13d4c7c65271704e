package planet

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 15 * time.Second

	userAgent = "ls-orrery/1.0 (Solar System Visualizer)"
)

//go:embed data/planets.json
var bundledCatalog []byte

// Bundled returns the raw catalog document compiled into the binary.
func Bundled() []byte {
	out := make([]byte, len(bundledCatalog))
	copy(out, bundledCatalog)
	return out
}

// LoadResult contains the result of a catalog load.
type LoadResult struct {
	Parsed    *ParseResult
	Origin    string
	RequestID string
	Duration  time.Duration
	Error     error
}

// Source produces a catalog document.
type Source interface {
	// Name returns the source name for display/logging.
	Name() string

	// Load fetches and parses the catalog.
	Load(ctx context.Context) LoadResult
}

// EmbeddedSource loads the bundled catalog.
type EmbeddedSource struct{}

// Name implements Source.
func (EmbeddedSource) Name() string { return "bundled" }

// Load implements Source.
func (EmbeddedSource) Load(ctx context.Context) LoadResult {
	start := time.Now()
	result := LoadResult{Origin: "bundled"}
	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}
	parsed, err := Parse(bundledCatalog)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = fmt.Errorf("parse bundled catalog: %w", err)
		return result
	}
	result.Parsed = parsed
	return result
}

// Fetcher loads a catalog over HTTP(S).
type Fetcher struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a fetcher for the catalog at url.
func NewFetcher(url string, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		url:     url,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Name implements Source.
func (f *Fetcher) Name() string { return f.url }

// URL returns the configured catalog URL.
func (f *Fetcher) URL() string {
	return f.url
}

// Load implements Source.
func (f *Fetcher) Load(ctx context.Context) LoadResult {
	start := time.Now()
	result := LoadResult{
		Origin:    f.url,
		RequestID: uuid.NewString(),
	}

	raw, err := f.fetchRaw(ctx, result.RequestID)
	result.Duration = time.Since(start)
	if err != nil {
		result.Error = err
		return result
	}

	parsed, err := Parse(raw)
	if err != nil {
		result.Error = fmt.Errorf("parse catalog: %w", err)
		return result
	}
	result.Parsed = parsed
	return result
}

func (f *Fetcher) fetchRaw(ctx context.Context, requestID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}
