// Package links detects links in plain text for the source surface.
//
// Detection is stateless: every pass scans the whole text line by line and
// returns a fresh list. Nothing is patched incrementally.
package links

import (
	"strings"

	"github.com/zjrosen/quill/internal/markup"
)

// Link is a detected link. Start and End are byte offsets into the scanned
// text and cover the full markup, e.g. the whole "[label](url)".
type Link struct {
	Start       int
	End         int
	URL         string
	DisplayText string
	Explicit    bool // written as [label](url)
}

// Len returns the byte length of the link's markup.
func (l Link) Len() int { return l.End - l.Start }

// Detect returns every link in text in document order. Explicit links are
// always found; bare URLs and emails only when autoLink is set. Emphasis
// takes precedence exactly as in the parser, so a span detected here is
// always a link run when the same text is parsed.
func Detect(text string, autoLink bool) []Link {
	var out []Link
	lineStart := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		body := strings.TrimSuffix(line, "\n")
		for _, s := range markup.Scan(body, autoLink) {
			if s.Run.Kind != markup.KindLink {
				continue
			}
			out = append(out, Link{
				Start:       lineStart + s.Start,
				End:         lineStart + s.End,
				URL:         s.Run.URL,
				DisplayText: s.Run.Text,
				Explicit:    s.Kind == markup.SpanLink,
			})
		}
		lineStart += len(line)
	}
	return out
}

// At returns the link covering byte offset off, if any.
func At(links []Link, off int) (Link, bool) {
	for _, l := range links {
		if off >= l.Start && off < l.End {
			return l, true
		}
	}
	return Link{}, false
}
