package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// genericImageProbes is the fallback chain used when no site rule set
// matches the hostname, or when the matching rule set came up empty.
var genericImageProbes = []Probe{
	metaProbe(
		`meta[property="og:image"]`,
		`meta[property="og:image:url"]`,
		`meta[name="twitter:image"]`,
	),
	func(d *Document, _ *Context) (string, bool) {
		href, exists := d.Find(`link[rel="image_src"]`).First().Attr("href")
		return href, exists && strings.TrimSpace(href) != ""
	},
	firstLargeImage,
}

// firstLargeImage returns the first <img src> that is not a data URI and
// whose declared width and height, when present, both reach the configured
// minimum. Undeclared dimensions are not held against the candidate.
func firstLargeImage(d *Document, ctx *Context) (string, bool) {
	var found string
	d.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return true
		}
		if !dimensionOK(s, "width", ctx.MinImageDimension) || !dimensionOK(s, "height", ctx.MinImageDimension) {
			return true
		}
		found = src
		return false
	})
	return found, found != ""
}

func dimensionOK(s *goquery.Selection, attr string, min int) bool {
	v, exists := s.Attr(attr)
	if !exists {
		return true
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if err != nil {
		return true
	}
	return n >= min
}

// extractImage runs the generic image chain, resolving every candidate to
// an absolute URL and discarding tracking pixels. Probes whose candidate
// fails resolution do not win the chain; the next probe gets its turn.
func extractImage(d *Document, ctx *Context) (string, bool) {
	for _, p := range genericImageProbes {
		candidate, ok := p(d, ctx)
		if !ok {
			continue
		}
		if abs, ok := ctx.Resolve(candidate); ok {
			return abs, true
		}
	}
	return "", false
}
