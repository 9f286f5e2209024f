package markup

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a claimed region of one line together with the run it produces.
// Start and End are byte offsets into the line, End exclusive.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
	Run   Run
}

// Interval is a half-open byte range [Start, End) of a line.
type Interval struct {
	Start int
	End   int
}

func (iv Interval) contains(pos int) bool { return pos >= iv.Start && pos < iv.End }

// Scan finds formatted and protected spans in a single line.
//
// Protected regions (link targets and, when autoLink is set, bare URLs and
// emails) are computed first; emphasis whose delimiters fall inside one is
// rejected. Formatting spans are then claimed in precedence order. A
// candidate overlapping an already claimed span is dropped silently.
// The result is sorted by Start and never overlaps.
func Scan(line string, autoLink bool) []Span {
	if line == "" {
		return nil
	}

	var urls, emails []Interval
	protected := linkTargets(line)
	if autoLink {
		urls = URLMatches(line)
		emails = EmailMatches(line)
		protected = append(protected, urls...)
		protected = append(protected, emails...)
	}

	var spans []Span
	claimed := func(start, end int) bool {
		for _, s := range spans {
			if start < s.End && s.Start < end {
				return true
			}
		}
		return false
	}
	inProtected := func(pos int) bool {
		for _, iv := range protected {
			if iv.contains(pos) {
				return true
			}
		}
		return false
	}

	for _, rule := range emphasisRules {
		eachCandidate(line, rule.pattern, func(loc []int) bool {
			start, end := loc[0], loc[1]
			if claimed(start, end) || inProtected(start) || inProtected(end-1) {
				return false
			}
			if rule.word && !onWordBoundary(line, start, end) {
				return false
			}
			run := Run{Text: line[loc[2]:loc[3]]}
			switch rule.kind {
			case SpanBoldItalic:
				run.Kind = KindBoldItalic
			case SpanBold:
				run.Kind = KindBold
			case SpanItalic:
				run.Kind = KindItalic
				run.Marker = rule.marker
			}
			spans = append(spans, Span{Kind: rule.kind, Start: start, End: end, Run: run})
			return true
		})
	}

	eachCandidate(line, LinkPattern, func(loc []int) bool {
		if claimed(loc[0], loc[1]) {
			return false
		}
		target := line[loc[4]:loc[5]]
		spans = append(spans, Span{
			Kind:  SpanLink,
			Start: loc[0],
			End:   loc[1],
			Run: Run{
				Kind:   KindLink,
				Text:   line[loc[2]:loc[3]],
				URL:    NormalizeURL(target),
				Target: target,
			},
		})
		return true
	})

	if autoLink {
		for _, iv := range urls {
			if claimed(iv.Start, iv.End) {
				continue
			}
			text := line[iv.Start:iv.End]
			spans = append(spans, Span{Kind: SpanURL, Start: iv.Start, End: iv.End,
				Run: Run{Kind: KindLink, Text: text, URL: NormalizeURL(text)}})
		}
		// URL spans are claimed before emails are considered.
		for _, iv := range emails {
			if claimed(iv.Start, iv.End) {
				continue
			}
			text := line[iv.Start:iv.End]
			spans = append(spans, Span{Kind: SpanEmail, Start: iv.Start, End: iv.End,
				Run: Run{Kind: KindLink, Text: text, URL: NormalizeURL(text)}})
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

// eachCandidate walks pattern matches left to right. When accept rejects a
// match, scanning resumes one byte after its start so a later candidate that
// overlapped the rejected one can still be found.
func eachCandidate(line string, pattern *regexp.Regexp, accept func(loc []int) bool) {
	for from := 0; from < len(line); {
		loc := pattern.FindStringSubmatchIndex(line[from:])
		if loc == nil {
			return
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += from
			}
		}
		if accept(loc) {
			from = loc[1]
		} else {
			from = loc[0] + 1
		}
	}
}

// linkTargets returns the target regions of explicit [label](target) syntax.
func linkTargets(line string) []Interval {
	var out []Interval
	for _, loc := range LinkPattern.FindAllStringSubmatchIndex(line, -1) {
		out = append(out, Interval{Start: loc[4], End: loc[5]})
	}
	return out
}

// URLMatches returns bare URL regions in line. Trailing punctuation is
// trimmed from scheme and www. matches, and bare domains that are part of an
// email address are rejected.
func URLMatches(line string) []Interval {
	var out []Interval
	for _, loc := range URLPattern.FindAllStringIndex(line, -1) {
		start, end := loc[0], loc[1]
		text := line[start:end]
		lower := strings.ToLower(text)
		scheme := strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
		if scheme || strings.HasPrefix(lower, "www.") {
			end = start + len(strings.TrimRight(text, trailingPunct))
		} else {
			if start > 0 && strings.ContainsRune("@./-_", rune(line[start-1])) {
				continue
			}
			if end < len(line) && line[end] == '@' {
				continue
			}
		}
		if end <= start {
			continue
		}
		out = append(out, Interval{Start: start, End: end})
	}
	return out
}

// EmailMatches returns email address regions in line.
func EmailMatches(line string) []Interval {
	var out []Interval
	for _, loc := range EmailPattern.FindAllStringIndex(line, -1) {
		out = append(out, Interval{Start: loc[0], End: loc[1]})
	}
	return out
}

// onWordBoundary reports whether the span [start,end) is not glued to
// letters or digits on either side, so snake_case_words stay plain text.
func onWordBoundary(line string, start, end int) bool {
	if start > 0 {
		r, _ := utf8.DecodeLastRuneInString(line[:start])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	if end < len(line) {
		r, _ := utf8.DecodeRuneInString(line[end:])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
