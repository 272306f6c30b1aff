package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a queryable parse tree over one fetched page. Parsing is
// permissive the way a browser is: arbitrary broken markup degrades to a
// partial tree, never an error. Read-only after construction and alive only
// for the duration of one extraction request.
type Document struct {
	doc *goquery.Document
	raw string
}

// ParseDocument builds a Document from raw HTML. It never fails; in the
// (reader-level-only) error case it returns a Document over an empty tree
// so every probe simply misses.
func ParseDocument(rawHTML string) *Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return &Document{doc: doc, raw: rawHTML}
}

// Find runs a CSS selector query against the tree.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// FindMatcher runs a precompiled matcher against the tree.
func (d *Document) FindMatcher(m goquery.Matcher) *goquery.Selection {
	return d.doc.FindMatcher(m)
}

// MetaContent returns the content attribute of the first matching meta tag
// with a non-empty value.
func (d *Document) MetaContent(selectors ...string) (string, bool) {
	for _, sel := range selectors {
		content, exists := d.doc.Find(sel).First().Attr("content")
		if exists && strings.TrimSpace(content) != "" {
			return content, true
		}
	}
	return "", false
}

// Raw returns the original HTML, used by the regex-based probe tiers.
func (d *Document) Raw() string {
	return d.raw
}

// Context carries per-request state shared by every probe: the base URL for
// relative resolution, the hostname for site-rule dispatch, and extraction
// thresholds.
type Context struct {
	// BaseURL is the post-redirect URL of the fetched page.
	BaseURL *url.URL

	// Host is the lowercased hostname of BaseURL.
	Host string

	// MinImageDimension is the smallest declared width/height accepted by
	// the generic <img> probe.
	MinImageDimension int
}

// NewContext builds a Context from the page's final URL. A nil or
// unparseable URL leaves BaseURL nil; resolution then misses instead of
// panicking.
func NewContext(finalURL string, minImageDim int) *Context {
	ctx := &Context{MinImageDimension: minImageDim}
	if u, err := url.Parse(finalURL); err == nil && u.Host != "" {
		ctx.BaseURL = u
		ctx.Host = strings.ToLower(u.Hostname())
	}
	return ctx
}

// Resolve converts an image-URL candidate to an absolute URL and discards
// candidates that look like tracking pixels.
func (c *Context) Resolve(candidate string) (string, bool) {
	abs, ok := ResolveURL(candidate, c.BaseURL)
	if !ok {
		return "", false
	}
	if isTrackingPixel(abs) {
		return "", false
	}
	return abs, true
}
