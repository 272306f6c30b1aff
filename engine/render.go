package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// RenderEngine is the second fetch tier. It delegates JavaScript execution
// to an external rendering service: a GET against the service endpoint with
// the API key, the target URL, and a render flag as query parameters. The
// body comes back as fully-rendered HTML. The service is treated as opaque;
// any non-2xx status or timeout is simply a tier failure.
type RenderEngine struct {
	endpoint     string
	apiKey       string
	client       *http.Client
	maxBodyBytes int64
}

// NewRenderEngine creates a RenderEngine against the given service endpoint.
// Callers should only construct one when an API key is configured.
func NewRenderEngine(endpoint, apiKey string, maxBodyBytes int64) *RenderEngine {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 10 << 20
	}
	return &RenderEngine{
		endpoint:     endpoint,
		apiKey:       apiKey,
		client:       &http.Client{},
		maxBodyBytes: maxBodyBytes,
	}
}

func (e *RenderEngine) Name() string { return SourceRendered }

func (e *RenderEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	serviceURL, err := url.Parse(e.endpoint)
	if err != nil {
		return nil, fmt.Errorf("render: bad endpoint: %w", err)
	}
	q := serviceURL.Query()
	q.Set("api_key", e.apiKey)
	q.Set("url", req.URL)
	q.Set("render", "true")
	serviceURL.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, serviceURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("render: build request: %w", err)
	}

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("render: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("render: service status %d for %s", resp.StatusCode, req.URL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, e.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("render: read body: %w", err)
	}

	return &FetchResult{
		HTML:       string(body),
		StatusCode: resp.StatusCode,
		// The service does not report the post-redirect URL, so relative
		// resolution falls back to the requested URL.
		FinalURL: req.URL,
		Source:   e.Name(),
	}, nil
}
