package markup

import "regexp"

// SpanKind identifies which rule produced a span.
type SpanKind int

const (
	SpanBoldItalic SpanKind = iota
	SpanBold
	SpanItalic
	SpanLink
	SpanURL
	SpanEmail
)

func (k SpanKind) String() string {
	switch k {
	case SpanBoldItalic:
		return "bold-italic"
	case SpanBold:
		return "bold"
	case SpanItalic:
		return "italic"
	case SpanLink:
		return "link"
	case SpanURL:
		return "url"
	case SpanEmail:
		return "email"
	default:
		return "unknown"
	}
}

// Compiled patterns. Content groups never start or end with whitespace and
// never contain their own delimiter, so nested emphasis does not match.
var (
	boldItalicPattern       = regexp.MustCompile(`\*\*\*([^*\s](?:[^*\n]*[^*\s])?)\*\*\*`)
	boldPattern             = regexp.MustCompile(`\*\*([^*\s](?:[^*\n]*[^*\s])?)\*\*`)
	italicStarPattern       = regexp.MustCompile(`\*([^*\s](?:[^*\n]*[^*\s])?)\*`)
	italicUnderscorePattern = regexp.MustCompile(`_([^_\s](?:[^_\n]*[^_\s])?)_`)

	// LinkPattern matches [label](target). Group 1 is the label, group 2 the
	// target as written.
	LinkPattern = regexp.MustCompile(`\[([^\[\]\n]+)\]\(([^()\s]+)\)`)

	// URLPattern matches scheme URLs, www. hosts and bare domains with a
	// common top-level domain.
	URLPattern = regexp.MustCompile(`(?i)\b(?:https?://[^\s<>()\[\]"]+|www\.[^\s<>()\[\]"]+|[a-z0-9](?:[a-z0-9-]*[a-z0-9])?(?:\.[a-z0-9](?:[a-z0-9-]*[a-z0-9])?)*\.(?:com|org|net|io|dev|edu|gov|co|app|info|me|ai|uk|de|us|ca|xyz)\b(?:/[^\s<>()\[\]"]*)?)`)

	// EmailPattern matches plain email addresses.
	EmailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// emphasisRule is one entry of the ordered emphasis precedence list.
type emphasisRule struct {
	kind    SpanKind
	pattern *regexp.Regexp
	delim   int  // delimiter width in bytes
	marker  byte // italic marker
	word    bool // delimiters must sit on word boundaries
}

// emphasisRules lists emphasis patterns from highest to lowest precedence.
// Scan walks this slice in order; the order here is the precedence.
var emphasisRules = []emphasisRule{
	{kind: SpanBoldItalic, pattern: boldItalicPattern, delim: 3},
	{kind: SpanBold, pattern: boldPattern, delim: 2},
	{kind: SpanItalic, pattern: italicStarPattern, delim: 1, marker: '*'},
	{kind: SpanItalic, pattern: italicUnderscorePattern, delim: 1, marker: '_', word: true},
}

// trailingPunct is trimmed from the end of scheme and www. URL matches so
// "see https://example.com." does not swallow the full stop.
const trailingPunct = `.,;:!?'`
