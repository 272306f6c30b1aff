package sites

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/wishport/unfurl/extract"
)

// BestBuy resolves prices on bestbuy.* product pages. Best Buy lists many
// dollar figures per page (monthly plan rates, crossed-out prices, open-box
// offers), so candidate selection leans on a sanity floor and a
// lowest-candidate rule rather than first-match.
type BestBuy struct {
	// PriceFloor is the minimum value a candidate must reach to be trusted
	// outright. Guards against plan fees and other incidental small numbers.
	// A heuristic inferred from observed markup, hence configurable.
	PriceFloor float64
}

func (b *BestBuy) Matches(host string) bool {
	return hostMatches(host, "bestbuy")
}

// Phase A: priority selectors, most trustworthy first.
var bestBuyPrioritySelectors = []cascadia.Selector{
	cascadia.MustCompile(`[data-testid="customer-price"] span[aria-hidden="true"]`),
	cascadia.MustCompile(`[data-testid="customer-price"]`),
	cascadia.MustCompile(`.priceView-hero-price span[aria-hidden="true"]`),
	cascadia.MustCompile(`.priceView-customer-price span`),
	cascadia.MustCompile(`[itemprop="price"]`),
}

// Phase B: JSON keys Best Buy embeds in its page state.
var bestBuyJSONPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"salePrice"\s*:\s*"?([\d.,]+)`),
	regexp.MustCompile(`"regularPrice"\s*:\s*"?([\d.,]+)`),
	regexp.MustCompile(`"price"\s*:\s*"?([\d.,]+)`),
	regexp.MustCompile(`"customerPrice"\s*:\s*\{[^}]*?"currentPrice"\s*:\s*"?([\d.,]+)`),
	regexp.MustCompile(`"formattedSalePrice"\s*:\s*"[^"\d]*([\d.,]+)"`),
	regexp.MustCompile(`"formattedPriceValue"\s*:\s*"[^"\d]*([\d.,]+)"`),
	regexp.MustCompile(`"priceWithPlan"\s*:\s*"?([\d.,]+)`),
	regexp.MustCompile(`"priceAmount"\s*:\s*"?([\d.,]+)`),
}

// ResolvePrice runs two phases. Phase A walks the priority selectors and
// accepts the first candidate at or above the floor. Phase B, only when A
// found nothing, pools every embedded-JSON and $-shaped candidate and takes
// the lowest one that clears the floor (or the lowest overall when none do).
func (b *BestBuy) ResolvePrice(d *extract.Document, ctx *extract.Context) (float64, bool) {
	for _, sel := range bestBuyPrioritySelectors {
		var hit float64
		var found bool
		d.FindMatcher(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			v, ok := extract.NormalizePrice(s.Text())
			if ok && v >= b.PriceFloor {
				hit, found = v, true
				return false
			}
			return true
		})
		if found {
			return hit, true
		}
	}

	raw := d.Raw()
	var candidates []extract.PriceCandidate
	for _, re := range bestBuyJSONPatterns {
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			candidates = append(candidates, extract.PriceCandidate{RawText: m[1], SiteSpecific: true})
		}
	}
	candidates = append(candidates, extract.AllDollarAmounts(raw)...)

	return extract.SelectLowest(candidates, b.PriceFloor)
}

// ResolveImage has no Best Buy specific chain; the generic resolver's
// og:image path works on their pages.
func (b *BestBuy) ResolveImage(d *extract.Document, ctx *extract.Context) (string, bool) {
	return "", false
}
