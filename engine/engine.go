package engine

import (
	"context"
	"errors"
)

// Source identifiers recorded in FetchResult.Source. These values travel
// all the way to the API response's "source" field.
const (
	SourceDirect   = "direct"
	SourceRendered = "scraper"
)

// ErrInsufficientContent is returned by an engine whose response arrived
// but is too short to plausibly contain a product page. The orchestrator
// treats it the same as a failed attempt and advances to the next tier.
var ErrInsufficientContent = errors.New("engine: response body below minimum content threshold")

// Engine is the interface all fetch tiers implement.
type Engine interface {
	// Name returns the tier identifier ("direct" or "scraper").
	Name() string

	// Fetch retrieves the page content for the given request.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL     string
	Headers map[string]string
}

// FetchResult is the output of a successful engine fetch. It lives only
// for the duration of one extraction request.
type FetchResult struct {
	HTML       string
	StatusCode int

	// FinalURL is the URL after following all redirects. Relative URL
	// candidates found in the page resolve against this, not the input URL.
	FinalURL string

	// Source records which tier supplied the HTML.
	Source string
}
