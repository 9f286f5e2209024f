package markup

// Editing operations used by the formatted surface. They work on display
// positions and return a new document; the input document is not modified.
// After every edit each paragraph still has at least one run and no styled
// run is left empty, so the result always serializes to well-formed markup.

// InsertText inserts s (which must not contain newlines) at pos and returns
// the caret position after the inserted text.
func InsertText(doc Document, pos Position, s string) (Document, Position) {
	out := doc.Clone()
	if len(out.Paragraphs) == 0 {
		out = Empty()
	}
	pos = out.Clamp(pos)
	if s == "" {
		return out, pos
	}
	p := &out.Paragraphs[pos.Para]
	if len(p.Runs) == 0 {
		p.Runs = []Run{Text("")}
	}
	i, start := insertionRun(*p, pos.Offset)
	r := &p.Runs[i]
	at := pos.Offset - start
	switch {
	case r.Kind == KindLink && at == 0:
		p.Runs = insertRun(p.Runs, i, Text(s))
	case r.Kind == KindLink && at == len(r.Text):
		p.Runs = insertRun(p.Runs, i+1, Text(s))
	default:
		r.Text = r.Text[:at] + s + r.Text[at:]
	}
	return out, Position{Para: pos.Para, Offset: pos.Offset + len(s)}
}

func insertRun(runs []Run, i int, r Run) []Run {
	out := make([]Run, 0, len(runs)+1)
	out = append(out, runs[:i]...)
	out = append(out, r)
	return append(out, runs[i:]...)
}

// insertionRun picks the run that receives text typed at off. At a boundary
// between two runs a Text run is preferred, so typing next to a link or
// emphasis extends the plain text around it. At a paragraph edge the outer
// run is returned; InsertText starts a new Text run there if it is a link.
func insertionRun(p Paragraph, off int) (idx, start int) {
	pos := 0
	for i, r := range p.Runs {
		end := pos + len(r.Text)
		if off < end || (off == end && i == len(p.Runs)-1) {
			return i, pos
		}
		if off == end {
			next := p.Runs[i+1]
			if r.Kind == KindText || next.Kind != KindText {
				return i, pos
			}
			return i + 1, end
		}
		pos = end
	}
	last := len(p.Runs) - 1
	return last, pos - len(p.Runs[last].Text)
}

// DeleteRange removes display bytes [start, end) from paragraph para.
func DeleteRange(doc Document, para, start, end int) Document {
	out := doc.Clone()
	if para < 0 || para >= len(out.Paragraphs) || end <= start {
		return out
	}
	p := &out.Paragraphs[para]
	pos := 0
	for i := range p.Runs {
		r := &p.Runs[i]
		rs, re := pos, pos+len(r.Text)
		pos = re
		lo, hi := max(start, rs), min(end, re)
		if lo >= hi {
			continue
		}
		r.Text = r.Text[:lo-rs] + r.Text[hi-rs:]
	}
	p.Runs = normalizeRuns(p.Runs)
	return out
}

// SplitParagraph breaks the paragraph at pos in two, as when Enter is
// pressed, and returns the start of the new paragraph.
func SplitParagraph(doc Document, pos Position) (Document, Position) {
	out := doc.Clone()
	if len(out.Paragraphs) == 0 {
		out = Empty()
	}
	pos = out.Clamp(pos)
	left, right := splitRuns(out.Paragraphs[pos.Para].Runs, pos.Offset)

	paras := make([]Paragraph, 0, len(out.Paragraphs)+1)
	paras = append(paras, out.Paragraphs[:pos.Para]...)
	paras = append(paras, Paragraph{Runs: normalizeRuns(left)}, Paragraph{Runs: normalizeRuns(right)})
	paras = append(paras, out.Paragraphs[pos.Para+1:]...)
	out.Paragraphs = paras
	return out, Position{Para: pos.Para + 1}
}

// JoinParagraphs appends paragraph para to the one before it and returns
// the position where they meet. Joining the first paragraph is a no-op.
func JoinParagraphs(doc Document, para int) (Document, Position) {
	out := doc.Clone()
	if para <= 0 || para >= len(out.Paragraphs) {
		return out, out.Clamp(Position{Para: para})
	}
	prev := out.Paragraphs[para-1]
	at := Position{Para: para - 1, Offset: prev.Len()}
	runs := append(append([]Run{}, prev.Runs...), out.Paragraphs[para].Runs...)
	out.Paragraphs[para-1] = Paragraph{Runs: normalizeRuns(runs)}
	out.Paragraphs = append(out.Paragraphs[:para], out.Paragraphs[para+1:]...)
	return out, at
}

func splitRuns(runs []Run, off int) (left, right []Run) {
	pos := 0
	for _, r := range runs {
		end := pos + len(r.Text)
		switch {
		case end <= off:
			left = append(left, r)
		case pos >= off:
			right = append(right, r)
		default:
			l, rr := r, r
			l.Text = r.Text[:off-pos]
			rr.Text = r.Text[off-pos:]
			left = append(left, l)
			right = append(right, rr)
		}
		pos = end
	}
	return left, right
}

// normalizeRuns drops empty runs, merges neighbouring runs of the same style
// (links are never merged) and keeps at least one run in the paragraph.
func normalizeRuns(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		if r.Text == "" {
			continue
		}
		if n := len(out); n > 0 && mergeable(out[n-1], r) {
			out[n-1].Text += r.Text
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return []Run{Text("")}
	}
	return out
}

func mergeable(a, b Run) bool {
	return a.Kind == b.Kind && a.Kind != KindLink && a.Marker == b.Marker
}
