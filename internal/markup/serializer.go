package markup

import (
	"fmt"
	"strings"
)

// Serialize turns a Document back into canonical text. It is the structural
// inverse of Parse: Serialize(Parse(t, a)) == t for any t.
func Serialize(doc Document) string {
	text, _ := serialize(doc, false)
	return text
}

// SerializeMapped serializes doc and also returns the mapping between
// display positions and canonical byte offsets.
func SerializeMapped(doc Document) (string, *SourceMap) {
	return serialize(doc, true)
}

func serialize(doc Document, mapped bool) (string, *SourceMap) {
	var b strings.Builder
	var sm *SourceMap
	if mapped {
		sm = &SourceMap{paras: make([]paraMap, 0, len(doc.Paragraphs))}
	}

	for i, p := range doc.Paragraphs {
		if i > 0 {
			b.WriteByte('\n')
		}
		pm := paraMap{start: b.Len()}
		disp := 0
		for _, r := range p.Runs {
			prefix, suffix := delimiters(r)
			b.WriteString(prefix)
			if mapped {
				pm.segs = append(pm.segs, segment{disp: disp, can: b.Len(), length: len(r.Text)})
			}
			b.WriteString(r.Text)
			b.WriteString(suffix)
			disp += len(r.Text)
		}
		if mapped {
			pm.end = b.Len()
			pm.length = disp
			sm.paras = append(sm.paras, pm)
		}
	}
	if mapped {
		sm.total = b.Len()
	}
	return b.String(), sm
}

// delimiters returns the markup written around a run's content.
func delimiters(r Run) (prefix, suffix string) {
	switch r.Kind {
	case KindText:
		return "", ""
	case KindBold:
		return "**", "**"
	case KindItalic:
		m := "*"
		if r.Marker == '_' {
			m = "_"
		}
		return m, m
	case KindBoldItalic:
		return "***", "***"
	case KindLink:
		if r.Target != "" {
			return "[", "](" + r.Target + ")"
		}
		if IsBare(r.Text, r.URL) {
			return "", ""
		}
		return "[", "](" + r.URL + ")"
	default:
		panic(fmt.Sprintf("markup: unhandled run kind %d", r.Kind))
	}
}
