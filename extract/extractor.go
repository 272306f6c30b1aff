package extract

import (
	"log/slog"

	"github.com/wishport/unfurl/config"
	"github.com/wishport/unfurl/engine"
	"github.com/wishport/unfurl/models"
)

// RuleSet is a site-specific variant of the image and price resolvers,
// selected by hostname. A rule set that yields nothing falls back to the
// generic chains, so adding one can only ever widen coverage.
type RuleSet interface {
	// Matches reports whether this rule set applies to the hostname.
	Matches(host string) bool

	// ResolveImage returns an absolute image URL, or a miss.
	ResolveImage(d *Document, ctx *Context) (string, bool)

	// ResolvePrice returns a normalized price, or a miss.
	ResolvePrice(d *Document, ctx *Context) (float64, bool)
}

// Extractor turns a fetched page into a best-effort Metadata record. It is
// stateless across requests and safe for concurrent use: configuration and
// rule sets are read-only after construction.
type Extractor struct {
	cfg   config.ExtractConfig
	rules []RuleSet
}

// New creates an Extractor with the given site rule sets.
func New(cfg config.ExtractConfig, rules []RuleSet) *Extractor {
	return &Extractor{cfg: cfg, rules: rules}
}

// Extract runs all four field chains over one fetch result and merges their
// outputs with the fetch provenance. It never fails: each field degrades
// independently to null, and a page where everything missed is still a
// successful extraction.
func (e *Extractor) Extract(fr *engine.FetchResult) *models.Metadata {
	d := ParseDocument(fr.HTML)
	ctx := NewContext(fr.FinalURL, e.cfg.MinImageDimension)
	rules := e.rulesFor(ctx.Host)

	meta := &models.Metadata{Source: fr.Source}

	if title, ok := extractTitle(d, ctx); ok {
		meta.Title = &title
	}
	if desc, ok := extractDescription(d, ctx, e.cfg.ReadabilityFallback); ok {
		meta.Description = &desc
	}
	if img, ok := e.extractImage(d, ctx, rules); ok {
		meta.ImageURL = &img
	}
	if price, ok := extractPrice(d, ctx, rules); ok {
		meta.Price = &price
	}

	slog.Debug("extraction complete",
		"url", fr.FinalURL,
		"source", fr.Source,
		"title", meta.Title != nil,
		"description", meta.Description != nil,
		"image", meta.ImageURL != nil,
		"price", meta.Price != nil,
	)
	return meta
}

// extractImage prefers the hostname's rule set, then the generic chain.
func (e *Extractor) extractImage(d *Document, ctx *Context, rules RuleSet) (string, bool) {
	if rules != nil {
		if img, ok := rules.ResolveImage(d, ctx); ok {
			return img, true
		}
	}
	return extractImage(d, ctx)
}

func (e *Extractor) rulesFor(host string) RuleSet {
	if host == "" {
		return nil
	}
	for _, r := range e.rules {
		if r.Matches(host) {
			return r
		}
	}
	return nil
}
