package extract

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ysmood/gson"
)

// jsonLDPrice scans every application/ld+json block for an offer price.
// Blocks are tried in document order; the first one producing a value wins.
// A block that fails to parse is skipped, never fatal.
func jsonLDPrice(d *Document, _ *Context) (float64, bool) {
	var price float64
	var found bool
	d.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.TrimSpace(s.Text())
		// Some sites wrap the block in an HTML comment for legacy browsers.
		text = strings.TrimPrefix(text, "<!--")
		text = strings.TrimSuffix(text, "-->")

		value := gson.NewFrom(text).Val()
		if value == nil {
			return true
		}
		if p, ok := searchStructuredPrice(value); ok {
			price, found = p, true
			return false
		}
		return true
	})
	return price, found
}

// offerPriceKeys is the in-order key preference inside a single node.
var offerPriceKeys = [][]string{
	{"offers", "price"},
	{"offers", "lowPrice"},
	{"offers", "highPrice"},
	{"offers", "priceSpecification", "price"},
	{"price"},
	{"priceSpecification", "price"},
}

// containerKeys are the structural fields worth descending into. JSON-LD
// product data hides in @graph containers, item lists, and nested offers.
var containerKeys = []string{"@graph", "itemListElement", "itemOffered", "offers", "item"}

// searchStructuredPrice walks a parsed JSON-LD value looking for a price.
// At each object it tries the preferred key paths first, then recurses into
// known container fields; arrays are searched element by element.
func searchStructuredPrice(v interface{}) (float64, bool) {
	switch node := v.(type) {
	case []interface{}:
		for _, item := range node {
			if p, ok := searchStructuredPrice(item); ok {
				return p, true
			}
		}
	case map[string]interface{}:
		for _, path := range offerPriceKeys {
			if p, ok := priceAtPath(node, path); ok {
				return p, true
			}
		}
		for _, key := range containerKeys {
			if child, exists := node[key]; exists {
				if p, ok := searchStructuredPrice(child); ok {
					return p, true
				}
			}
		}
	}
	return 0, false
}

// priceAtPath follows a key path through nested values, descending through
// arrays along the way, and normalizes whatever scalar it lands on.
func priceAtPath(v interface{}, path []string) (float64, bool) {
	if len(path) == 0 {
		return scalarPrice(v)
	}
	switch node := v.(type) {
	case []interface{}:
		// An intermediate array means the rest of the path applies to
		// each element; an offers array is the common case.
		for _, item := range node {
			if p, ok := priceAtPath(item, path); ok {
				return p, true
			}
		}
	case map[string]interface{}:
		if child, exists := node[path[0]]; exists {
			return priceAtPath(child, path[1:])
		}
	}
	return 0, false
}

// scalarPrice normalizes a JSON scalar (string or number) into a price.
func scalarPrice(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case string:
		return NormalizePrice(t)
	case float64:
		return NormalizePrice(strconv.FormatFloat(t, 'f', -1, 64))
	}
	return 0, false
}
