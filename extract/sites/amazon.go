package sites

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/ysmood/gson"

	"github.com/wishport/unfurl/extract"
)

// Amazon resolves images and prices on amazon.* product pages, where the
// useful data sits in data attributes and embedded JSON rather than in
// anything resembling standard markup.
type Amazon struct{}

func (a *Amazon) Matches(host string) bool {
	return hostMatches(host, "amazon")
}

// Selector probes for the current and legacy price markup, in preference
// order. The offscreen span carries the full price as screen-reader text.
var amazonPriceSelectors = []cascadia.Selector{
	cascadia.MustCompile(`#corePriceDisplay_desktop_feature_div span.a-price span.a-offscreen`),
	cascadia.MustCompile(`span.apexPriceToPay span.a-offscreen`),
	cascadia.MustCompile(`span.priceToPay span.a-offscreen`),
	cascadia.MustCompile(`#priceblock_ourprice`),
	cascadia.MustCompile(`#priceblock_dealprice`),
	cascadia.MustCompile(`#priceblock_saleprice`),
}

// Regex probes over the raw HTML for the embedded JSON price fields Amazon
// scatters through its page state, in preference order.
var amazonPricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`"priceToPay"\s*:\s*\{[^}]*?"rawPrice"\s*:\s*"?([\d.,]+)`),
	regexp.MustCompile(`"apexPriceToPay"\s*:\s*\{[^}]*?"amount"\s*:\s*"?([\d.,]+)`),
	regexp.MustCompile(`"rawPrice"\s*:\s*"?([\d.,]+)`),
	regexp.MustCompile(`"displayPrice"\s*:\s*"[^"\d]*([\d.,]+)"`),
	regexp.MustCompile(`"priceAmount"\s*:\s*"?([\d.,]+)`),
	regexp.MustCompile(`"currencySymbol"\s*:\s*"[^"]*"\s*,\s*"amount"\s*:\s*"?([\d.,]+)`),
	regexp.MustCompile(`"amount"\s*:\s*"?([\d.,]+)"?\s*,\s*"currencySymbol"`),
}

func (a *Amazon) ResolvePrice(d *extract.Document, ctx *extract.Context) (float64, bool) {
	for _, sel := range amazonPriceSelectors {
		text := d.FindMatcher(sel).First().Text()
		if v, ok := extract.NormalizePrice(text); ok {
			return v, true
		}
	}
	raw := d.Raw()
	for _, re := range amazonPricePatterns {
		if m := re.FindStringSubmatch(raw); m != nil {
			if v, ok := extract.NormalizePrice(m[1]); ok {
				return v, true
			}
		}
	}
	return 0, false
}

var (
	amazonHiRes = regexp.MustCompile(`"hiRes"\s*:\s*"(https?://[^"]+)"`)
	amazonLarge = regexp.MustCompile(`"large"\s*:\s*"(https?://[^"]+)"`)
)

func (a *Amazon) ResolveImage(d *extract.Document, ctx *extract.Context) (string, bool) {
	landing := d.Find("#landingImage, #imgTagWrapperDiv img").First()

	// data-old-hires carries a plain URL on most pages, but some templates
	// stuff a JSON blob into it instead.
	if hires, exists := landing.Attr("data-old-hires"); exists {
		hires = strings.TrimSpace(hires)
		if hires != "" && !strings.HasPrefix(hires, "{") {
			if abs, ok := ctx.Resolve(hires); ok {
				return abs, true
			}
		}
	}

	// data-a-dynamic-image maps image URLs to [width, height] pairs; the
	// first key is the primary rendition.
	if dynamic, exists := landing.Attr("data-a-dynamic-image"); exists {
		if urlStr, ok := firstDynamicImageURL(dynamic); ok {
			if abs, ok := ctx.Resolve(urlStr); ok {
				return abs, true
			}
		}
	}

	raw := d.Raw()
	for _, re := range []*regexp.Regexp{amazonHiRes, amazonLarge} {
		if m := re.FindStringSubmatch(raw); m != nil {
			if abs, ok := ctx.Resolve(m[1]); ok {
				return abs, true
			}
		}
	}

	if content, ok := d.MetaContent(`meta[property="og:image"]`, `meta[name="twitter:image"]`); ok {
		return ctx.Resolve(content)
	}
	return "", false
}

var amazonFirstJSONKey = regexp.MustCompile(`^\s*\{\s*"((?:[^"\\]|\\.)+)"`)

// firstDynamicImageURL pulls the first key out of a data-a-dynamic-image
// JSON object. The attribute must actually parse as an object; the first
// key is then read off the source text, because a decoded Go map would
// scramble the authored order.
func firstDynamicImageURL(attr string) (string, bool) {
	if _, isObject := gson.NewFrom(attr).Val().(map[string]interface{}); !isObject {
		return "", false
	}
	m := amazonFirstJSONKey.FindStringSubmatch(attr)
	if m == nil {
		return "", false
	}
	return strings.ReplaceAll(m[1], `\/`, `/`), true
}
