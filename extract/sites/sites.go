// Package sites holds retailer-specific image and price resolvers. Each
// rule set implements extract.RuleSet and is selected by hostname; when a
// chain here yields nothing, the caller falls back to the generic logic, so
// these heuristics can only add coverage, never remove it.
package sites

import (
	"strings"

	"github.com/wishport/unfurl/config"
	"github.com/wishport/unfurl/extract"
)

// All returns every registered rule set in dispatch order.
func All(cfg config.ExtractConfig) []extract.RuleSet {
	return []extract.RuleSet{
		&Amazon{},
		&BestBuy{PriceFloor: cfg.BestBuyPriceFloor},
	}
}

// hostMatches reports whether the hostname belongs to the retail domain,
// covering region TLDs ("amazon.co.uk") and subdomains ("www.bestbuy.com").
// The domain must appear as a whole label so "notamazon.example" stays out.
func hostMatches(host, domain string) bool {
	for _, label := range strings.Split(strings.ToLower(host), ".") {
		if label == domain {
			return true
		}
	}
	return false
}
