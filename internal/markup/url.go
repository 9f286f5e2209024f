package markup

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// schemePattern recognizes the schemes the dialect understands. Anything
	// else (including "localhost:8080") is treated as scheme-less.
	schemePattern = regexp.MustCompile(`(?i)^(?:https?://|ftp://|file://|mailto:)`)

	// strippedSchemePattern is the part removed before comparing a link label
	// with its URL.
	strippedSchemePattern = regexp.MustCompile(`(?i)^(?:https?://|mailto:)`)
)

// NormalizeURL returns raw with a resolved scheme. A token containing '@'
// and no '/' becomes a mailto: URL; anything else without a scheme gets
// https:// prepended.
func NormalizeURL(raw string) string {
	if raw == "" || schemePattern.MatchString(raw) {
		return raw
	}
	if strings.Contains(raw, "@") && !strings.Contains(raw, "/") {
		return "mailto:" + raw
	}
	return "https://" + raw
}

// WithoutScheme strips a leading http(s):// or mailto: from u.
func WithoutScheme(u string) string {
	if loc := strippedSchemePattern.FindStringIndex(u); loc != nil {
		return u[loc[1]:]
	}
	return u
}

// IsBare reports whether a link with this label and URL is written as the
// bare label. The rule is exact equality, optionally ignoring the scheme and
// a trailing slash. Prefix containment never counts: "example" is not a bare
// form of "https://example.com".
func IsBare(label, u string) bool {
	if label == "" {
		return false
	}
	if label == u {
		return true
	}
	return strings.TrimSuffix(label, "/") == strings.TrimSuffix(WithoutScheme(u), "/")
}

func isNavigableURL(u string) bool {
	if u == "" {
		return false
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "mailto":
		return parsed.Opaque != ""
	case "":
		return false
	default:
		return parsed.Host != "" || parsed.Path != ""
	}
}
