package markup

import "strings"

// Parse builds a Document from canonical text. Every "\n" ends a paragraph,
// so the document always has exactly strings.Count(text, "\n")+1
// paragraphs. A "\r" before the newline stays part of the line's content.
//
// Parse never fails: anything that does not match a rule is plain text.
func Parse(text string, autoLink bool) Document {
	lines := strings.Split(text, "\n")
	doc := Document{Paragraphs: make([]Paragraph, len(lines))}
	for i, line := range lines {
		doc.Paragraphs[i] = ParseLine(line, autoLink)
	}
	return doc
}

// ParseLine builds a single paragraph. An empty line yields one empty Text
// run so the blank line survives serialization.
func ParseLine(line string, autoLink bool) Paragraph {
	if line == "" {
		return Paragraph{Runs: []Run{Text("")}}
	}

	spans := Scan(line, autoLink)
	runs := make([]Run, 0, 2*len(spans)+1)
	pos := 0
	for _, s := range spans {
		if s.Start > pos {
			runs = append(runs, Text(line[pos:s.Start]))
		}
		runs = append(runs, s.Run)
		pos = s.End
	}
	if pos < len(line) {
		runs = append(runs, Text(line[pos:]))
	}
	return Paragraph{Runs: runs}
}
