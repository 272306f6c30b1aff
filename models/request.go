package models

import (
	"net/url"
	"strings"
)

// MetadataRequest is the payload for POST /api/v1/metadata.
type MetadataRequest struct {
	// URL is the product page to extract metadata from. Required.
	URL string `json:"url"`

	// Timeout is the maximum duration in seconds for the entire
	// fetch-and-extract operation. Default: 0 (use server defaults).
	// Capped by the server's configured maximum.
	Timeout int `json:"timeout,omitempty"`

	// MaxAge, in milliseconds, opts this request into the response cache.
	// A cached result younger than MaxAge is returned without refetching.
	// Default: 0 (no caching).
	MaxAge int `json:"max_age,omitempty"`
}

// Validate checks that the URL parses and uses an http(s) scheme.
// It runs before any network call, so malformed input never reaches a fetch.
func (r *MetadataRequest) Validate() error {
	raw := strings.TrimSpace(r.URL)
	if raw == "" {
		return NewExtractError(ErrCodeInvalidRequest, "url is required", nil)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return NewExtractError(ErrCodeInvalidRequest, "url is not parseable", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewExtractError(ErrCodeInvalidRequest, "url scheme must be http or https", nil)
	}
	if u.Host == "" {
		return NewExtractError(ErrCodeInvalidRequest, "url is missing a host", nil)
	}
	r.URL = raw
	return nil
}
