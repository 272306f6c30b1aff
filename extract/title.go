package extract

import "strings"

// titleProbes is the ordered fallback chain for the product title.
var titleProbes = []Probe{
	metaProbe(`meta[property="og:title"]`),
	metaProbe(`meta[name="twitter:title"]`, `meta[name="title"]`),
	func(d *Document, _ *Context) (string, bool) {
		text := d.Find("title").First().Text()
		if strings.TrimSpace(text) == "" {
			return "", false
		}
		return text, true
	},
}

func extractTitle(d *Document, ctx *Context) (string, bool) {
	raw, ok := firstMatch(d, ctx, titleProbes)
	if !ok {
		return "", false
	}
	title := CollapseWhitespace(raw)
	return title, title != ""
}
