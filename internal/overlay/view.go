package overlay

import (
	"sort"
	"strings"

	"github.com/zjrosen/quill/internal/markup"
)

// Fragment is a piece of display text with uniform styling.
type Fragment struct {
	Text      string
	Style     markup.Kind // style of the run the fragment came from
	URL       string      // set for link fragments
	Navigable bool
	Emphasis  bool // bolded by the reading overlay
	Start     int  // byte offset within the line's display text
}

// Line is the rendering of one paragraph.
type Line struct {
	Fragments []Fragment
}

// Text returns the line's display text.
func (l Line) Text() string {
	var b strings.Builder
	for _, f := range l.Fragments {
		b.WriteString(f.Text)
	}
	return b.String()
}

// View is a display-only rendering of a document. When Overlay is set the
// view carries bionic emphasis and must be shown read-only.
type View struct {
	Lines    []Line
	Overlay  bool
	Strength Strength
}

// Text returns the display text with lines joined by newlines. It always
// equals PlainText of the document the view was built from.
func (v View) Text() string {
	parts := make([]string, len(v.Lines))
	for i, l := range v.Lines {
		parts[i] = l.Text()
	}
	return strings.Join(parts, "\n")
}

// Plain renders doc without any overlay.
func Plain(doc markup.Document) View {
	return build(doc, func(line *lineBuilder, r markup.Run) {
		line.add(Fragment{Text: r.Text, Style: r.Kind})
	}, false, Medium)
}

// Apply renders doc with the reading overlay at strength s. Letter tokens
// get a bold prefix; link runs and URL or email text inside plain runs are
// left alone. doc is not modified.
func Apply(doc markup.Document, s Strength) View {
	if !s.Valid() {
		s = Medium
	}
	return build(doc, func(line *lineBuilder, r markup.Run) {
		pos := 0
		for _, iv := range protectedRegions(r.Text) {
			emphasize(line, r, r.Text[pos:iv.Start], s)
			line.add(Fragment{Text: r.Text[iv.Start:iv.End], Style: r.Kind})
			pos = iv.End
		}
		emphasize(line, r, r.Text[pos:], s)
	}, true, s)
}

func build(doc markup.Document, styleRun func(*lineBuilder, markup.Run), overlay bool, s Strength) View {
	v := View{Lines: make([]Line, len(doc.Paragraphs)), Overlay: overlay, Strength: s}
	for i, p := range doc.Paragraphs {
		var lb lineBuilder
		for _, r := range p.Runs {
			if r.Kind == markup.KindLink {
				lb.add(Fragment{Text: r.Text, Style: r.Kind, URL: r.URL, Navigable: r.Navigable()})
				continue
			}
			styleRun(&lb, r)
		}
		v.Lines[i] = Line{Fragments: lb.frags}
	}
	return v
}

func emphasize(line *lineBuilder, r markup.Run, text string, s Strength) {
	for _, tok := range Tokenize(text) {
		if tok.Class != ClassLetter {
			line.add(Fragment{Text: tok.Text, Style: r.Kind})
			continue
		}
		cut := byteIndexOfRune(tok.Text, PrefixLength(tok.Runes(), s))
		line.add(Fragment{Text: tok.Text[:cut], Style: r.Kind, Emphasis: true})
		if cut < len(tok.Text) {
			line.add(Fragment{Text: tok.Text[cut:], Style: r.Kind})
		}
	}
}

// protectedRegions returns URL and email matches in text, sorted and with
// overlaps removed.
func protectedRegions(text string) []markup.Interval {
	ivs := append(markup.URLMatches(text), markup.EmailMatches(text)...)
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start < ivs[j].Start })
	out := ivs[:0]
	end := 0
	for _, iv := range ivs {
		if iv.Start < end {
			if iv.End > end {
				out[len(out)-1].End = iv.End
				end = iv.End
			}
			continue
		}
		out = append(out, iv)
		end = iv.End
	}
	return out
}

func byteIndexOfRune(s string, n int) int {
	if n <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

type lineBuilder struct {
	frags []Fragment
	pos   int
}

// add appends f, merging it into the previous fragment when the styling
// is identical.
func (lb *lineBuilder) add(f Fragment) {
	if f.Text == "" {
		return
	}
	f.Start = lb.pos
	lb.pos += len(f.Text)
	if n := len(lb.frags); n > 0 {
		last := &lb.frags[n-1]
		if f.Style != markup.KindLink && last.Style == f.Style && last.Emphasis == f.Emphasis && last.URL == "" {
			last.Text += f.Text
			return
		}
	}
	lb.frags = append(lb.frags, f)
}
