// Package markup implements the quill markup dialect: a line-oriented subset
// of Markdown with bold, italic, bold-italic, labeled links and bare
// URL/email auto-detection.
//
// Canonical text is the only source of truth. A Document is always derived
// from it by Parse and turned back into text by Serialize.
package markup

import "strings"

// Kind identifies the variant of an inline run.
type Kind int

const (
	KindText Kind = iota
	KindBold
	KindItalic
	KindBoldItalic
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindBoldItalic:
		return "bold-italic"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// Run is one styled inline run of a paragraph.
//
// Text holds the visible content (the label for links). URL is only set for
// links and always carries a scheme. Target is the destination exactly as it
// was written in [label](target) syntax; it is empty for auto-detected and
// constructed links, which are serialized with the bare-vs-labeled rule.
type Run struct {
	Kind   Kind
	Text   string
	URL    string
	Target string
	Marker byte // italic delimiter, '*' or '_'
}

// Text returns a plain text run.
func Text(s string) Run { return Run{Kind: KindText, Text: s} }

// Bold returns a bold run.
func Bold(s string) Run { return Run{Kind: KindBold, Text: s} }

// Italic returns an italic run delimited with '*'.
func Italic(s string) Run { return Run{Kind: KindItalic, Text: s, Marker: '*'} }

// BoldItalic returns a bold-italic run.
func BoldItalic(s string) Run { return Run{Kind: KindBoldItalic, Text: s} }

// Link returns a link run. The URL is normalized so it always has a scheme.
func Link(label, url string) Run {
	return Run{Kind: KindLink, Text: label, URL: NormalizeURL(url)}
}

// Navigable reports whether a link run has a target that can be opened.
// Non-link runs are never navigable.
func (r Run) Navigable() bool {
	return r.Kind == KindLink && isNavigableURL(r.URL)
}

// Paragraph is one line of canonical text.
type Paragraph struct {
	Runs []Run
}

// Text returns the display text of the paragraph.
func (p Paragraph) Text() string {
	if len(p.Runs) == 1 {
		return p.Runs[0].Text
	}
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Len returns the byte length of the paragraph's display text.
func (p Paragraph) Len() int {
	n := 0
	for _, r := range p.Runs {
		n += len(r.Text)
	}
	return n
}

// Document is the structured form of canonical text: one paragraph per line.
type Document struct {
	Paragraphs []Paragraph
}

// Empty returns a document holding a single blank paragraph, which is what
// Parse produces for empty text.
func Empty() Document {
	return Document{Paragraphs: []Paragraph{{Runs: []Run{Text("")}}}}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{Paragraphs: make([]Paragraph, len(d.Paragraphs))}
	for i, p := range d.Paragraphs {
		runs := make([]Run, len(p.Runs))
		copy(runs, p.Runs)
		out.Paragraphs[i] = Paragraph{Runs: runs}
	}
	return out
}

// Equal reports whether two documents are structurally identical.
func (d Document) Equal(o Document) bool {
	if len(d.Paragraphs) != len(o.Paragraphs) {
		return false
	}
	for i := range d.Paragraphs {
		a, b := d.Paragraphs[i].Runs, o.Paragraphs[i].Runs
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// PlainText returns the display text of the whole document with paragraphs
// joined by newlines. Offsets reported against a document's current text
// (spell markers on the formatted surface) index into this string.
func (d Document) PlainText() string {
	parts := make([]string, len(d.Paragraphs))
	for i, p := range d.Paragraphs {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// Position is a location in a document's display text: a paragraph index and
// a byte offset into that paragraph's display text.
type Position struct {
	Para   int
	Offset int
}

// Before reports whether p comes strictly before o.
func (p Position) Before(o Position) bool {
	if p.Para != o.Para {
		return p.Para < o.Para
	}
	return p.Offset < o.Offset
}

// Clamp returns the nearest valid position in d.
func (d Document) Clamp(p Position) Position {
	if len(d.Paragraphs) == 0 {
		return Position{}
	}
	if p.Para < 0 {
		return Position{}
	}
	if p.Para >= len(d.Paragraphs) {
		last := len(d.Paragraphs) - 1
		return Position{Para: last, Offset: d.Paragraphs[last].Len()}
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	if n := d.Paragraphs[p.Para].Len(); p.Offset > n {
		p.Offset = n
	}
	return p
}

// PositionAt converts an offset into PlainText to a Position.
func (d Document) PositionAt(offset int) Position {
	if offset < 0 {
		return Position{}
	}
	for i, p := range d.Paragraphs {
		n := p.Len()
		if offset <= n {
			return Position{Para: i, Offset: offset}
		}
		offset -= n + 1
	}
	return d.Clamp(Position{Para: len(d.Paragraphs)})
}

// OffsetOf converts a Position to an offset into PlainText.
func (d Document) OffsetOf(pos Position) int {
	pos = d.Clamp(pos)
	off := 0
	for i := 0; i < pos.Para; i++ {
		off += d.Paragraphs[i].Len() + 1
	}
	return off + pos.Offset
}
