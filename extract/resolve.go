package extract

import (
	"net/url"
	"regexp"
	"strings"
)

// trackingPixelPath matches URL paths that belong to analytics beacons
// rather than product imagery.
var trackingPixelPath = regexp.MustCompile(`(?i)(/pixel|/track|tracking|beacon|1x1|spacer)`)

// ResolveURL converts a relative or protocol-relative candidate into an
// absolute URL against the page's base. Already-absolute http(s) candidates
// pass through unchanged. Failures yield a miss, never an error.
func ResolveURL(candidate string, base *url.URL) (string, bool) {
	c := strings.TrimSpace(candidate)
	if c == "" {
		return "", false
	}
	if strings.HasPrefix(c, "http://") || strings.HasPrefix(c, "https://") {
		return c, true
	}
	if base == nil || base.Scheme == "" {
		return "", false
	}
	if strings.HasPrefix(c, "//") {
		return base.Scheme + ":" + c, true
	}
	if strings.HasPrefix(c, "/") {
		return base.Scheme + "://" + base.Host + c, true
	}
	ref, err := url.Parse(c)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	return resolved.String(), true
}

func isTrackingPixel(absURL string) bool {
	u, err := url.Parse(absURL)
	if err != nil {
		return false
	}
	return trackingPixelPath.MatchString(u.Path)
}
