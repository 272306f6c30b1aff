package extract

// Probe is one step in a field's fallback chain: inspect the document, yield
// a value or miss. Chains are ordered slices of probes evaluated in sequence,
// so ordering stays explicit and each probe is testable in isolation.
type Probe func(d *Document, ctx *Context) (string, bool)

// PriceProbe is a probe whose value is an already-normalized price.
type PriceProbe func(d *Document, ctx *Context) (float64, bool)

// firstMatch runs probes in order and returns the first hit.
func firstMatch(d *Document, ctx *Context, probes []Probe) (string, bool) {
	for _, p := range probes {
		if v, ok := p(d, ctx); ok {
			return v, true
		}
	}
	return "", false
}

// firstPrice runs price probes in order and returns the first hit.
func firstPrice(d *Document, ctx *Context, probes []PriceProbe) (float64, bool) {
	for _, p := range probes {
		if v, ok := p(d, ctx); ok {
			return v, true
		}
	}
	return 0, false
}

// metaProbe builds a probe over one or more meta-tag selectors.
func metaProbe(selectors ...string) Probe {
	return func(d *Document, _ *Context) (string, bool) {
		return d.MetaContent(selectors...)
	}
}
