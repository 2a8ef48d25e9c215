// Package url provides the URL helpers used to key and group context nodes.
package url

import (
	"net/url"
	"strings"
)

// Normalize returns the identity key for a tracked URL.
// Only a single trailing "/" is stripped: no case folding, no query or
// fragment handling and no scheme defaulting.
func Normalize(rawURL string) string {
	return strings.TrimSuffix(rawURL, "/")
}

// DomainKey returns "scheme://host" for a URL. The host may be empty, so
// file:///a and file:///b share the key "file://".
// When the URL cannot be parsed, or is relative, the input itself is
// returned: malformed URLs only match byte-identical malformed URLs.
func DomainKey(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" {
		return rawURL
	}
	return parsed.Scheme + "://" + parsed.Host
}

// SameDomain reports whether two URLs share a domain key.
func SameDomain(a, b string) bool {
	return DomainKey(a) == DomainKey(b)
}

// ExtractDomain extracts the display domain (host) from a URL string.
// Strips the "www." prefix so youtube.com and www.youtube.com
// resolve to the same value. Returns "" when there is no host.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return strings.TrimPrefix(parsed.Host, "www.")
}
