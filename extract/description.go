package extract

import (
	"strings"

	readability "github.com/go-shiori/go-readability"
)

// descriptionProbes is the ordered fallback chain for the description.
var descriptionProbes = []Probe{
	metaProbe(`meta[name="description"]`),
	metaProbe(`meta[property="og:description"]`),
	metaProbe(`meta[name="twitter:description"]`),
}

func extractDescription(d *Document, ctx *Context, readabilityFallback bool) (string, bool) {
	raw, ok := firstMatch(d, ctx, descriptionProbes)
	if !ok && readabilityFallback {
		raw, ok = readabilityExcerpt(d, ctx)
	}
	if !ok {
		return "", false
	}
	desc := CollapseWhitespace(raw)
	return desc, desc != ""
}

// readabilityExcerpt asks go-readability for the article excerpt. It only
// runs when every description meta tag missed, as a last resort for pages
// that carry no structured description at all.
func readabilityExcerpt(d *Document, ctx *Context) (string, bool) {
	if ctx.BaseURL == nil {
		return "", false
	}
	article, err := readability.FromReader(strings.NewReader(d.Raw()), ctx.BaseURL)
	if err != nil || strings.TrimSpace(article.Excerpt) == "" {
		return "", false
	}
	return article.Excerpt, true
}
