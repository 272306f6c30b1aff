package extract

import "regexp"

// PriceCandidate is one potential price found by a probe, kept raw so
// candidates within a tier can be compared before normalization commits.
type PriceCandidate struct {
	RawText      string
	Tier         int
	SiteSpecific bool
}

// metaPriceProbe covers the meta/microdata price tags, the most reliable
// signal when a site bothers to emit them.
func metaPriceProbe(d *Document, _ *Context) (float64, bool) {
	if content, ok := d.MetaContent(
		`meta[property="product:price:amount"]`,
		`meta[property="og:price:amount"]`,
	); ok {
		if v, ok := NormalizePrice(content); ok {
			return v, true
		}
	}

	meta := d.Find(`meta[itemprop="price"]`).First()
	for _, attr := range []string{"content", "value"} {
		if raw, exists := meta.Attr(attr); exists {
			if v, ok := NormalizePrice(raw); ok {
				return v, true
			}
		}
	}

	if content, ok := d.MetaContent(`meta[name="twitter:data1"]`); ok {
		if v, ok := NormalizePrice(content); ok {
			return v, true
		}
	}
	return 0, false
}

// microdataPriceProbe reads the first itemprop="price" element anywhere in
// the document: content attribute, then value, then text.
func microdataPriceProbe(d *Document, _ *Context) (float64, bool) {
	el := d.Find(`[itemprop="price"]`).First()
	if el.Length() == 0 {
		return 0, false
	}
	for _, attr := range []string{"content", "value"} {
		if raw, exists := el.Attr(attr); exists {
			if v, ok := NormalizePrice(raw); ok {
				return v, true
			}
		}
	}
	return NormalizePrice(el.Text())
}

// dollarAmount matches a $-prefixed numeral with optional thousands
// separators and optional two-decimal cents.
var dollarAmount = regexp.MustCompile(`\$\s?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?|\d+(?:\.\d{2})?)`)

// rawDollarProbe is the last-resort tier: the first $-shaped amount
// anywhere in the raw HTML.
func rawDollarProbe(d *Document, _ *Context) (float64, bool) {
	m := dollarAmount.FindStringSubmatch(d.Raw())
	if m == nil {
		return 0, false
	}
	return NormalizePrice(m[1])
}

// AllDollarAmounts returns every $-shaped amount in the raw HTML, in
// document order. Site rule sets use this to build candidate pools.
func AllDollarAmounts(raw string) []PriceCandidate {
	var out []PriceCandidate
	for _, m := range dollarAmount.FindAllStringSubmatch(raw, -1) {
		out = append(out, PriceCandidate{RawText: m[1], SiteSpecific: true})
	}
	return out
}

// SelectLowest picks the minimum normalized value among candidates at or
// above floor; when none reach the floor it falls back to the minimum of
// the whole pool. The lowest sane candidate is most often the true sale
// price, avoiding crossed-out, competitor, and plan-bundle highs.
func SelectLowest(candidates []PriceCandidate, floor float64) (float64, bool) {
	var bestFloored, bestAny float64
	var haveFloored, haveAny bool
	for _, c := range candidates {
		v, ok := NormalizePrice(c.RawText)
		if !ok {
			continue
		}
		if !haveAny || v < bestAny {
			bestAny, haveAny = v, true
		}
		if v >= floor && (!haveFloored || v < bestFloored) {
			bestFloored, haveFloored = v, true
		}
	}
	if haveFloored {
		return bestFloored, true
	}
	return bestAny, haveAny
}

// extractPrice runs the full price tier order: meta tags, the hostname's
// site rule set, JSON-LD, generic microdata, then the raw $ scan.
func extractPrice(d *Document, ctx *Context, rules RuleSet) (float64, bool) {
	probes := []PriceProbe{metaPriceProbe}
	if rules != nil {
		probes = append(probes, rules.ResolvePrice)
	}
	probes = append(probes, jsonLDPrice, microdataPriceProbe, rawDollarProbe)
	return firstPrice(d, ctx, probes)
}
