package markup

// SourceMap relates display positions of a Document to byte offsets in the
// canonical text it serializes to.
//
// A display offset inside a run's content maps to the same offset inside
// that run's content in the canonical text. Canonical offsets that land in
// markup syntax (delimiters, brackets, link targets) have no display
// counterpart and clamp to the nearest run content boundary of the same
// line. Offsets past the end clamp to the end of the document.
type SourceMap struct {
	paras []paraMap
	total int
}

type paraMap struct {
	start  int // canonical offset of the line start
	end    int // canonical offset of the line end (before "\n")
	length int // display length
	segs   []segment
}

// segment records where one run's content lives in both coordinate systems.
type segment struct {
	disp   int // display offset within the paragraph
	can    int // absolute canonical offset
	length int
}

// Canonical converts a display position to a canonical byte offset.
func (m *SourceMap) Canonical(pos Position) int {
	if m == nil || len(m.paras) == 0 {
		return 0
	}
	if pos.Para < 0 {
		return 0
	}
	if pos.Para >= len(m.paras) {
		return m.total
	}
	pm := m.paras[pos.Para]
	off := pos.Offset
	if off <= 0 {
		if len(pm.segs) == 0 {
			return pm.start
		}
		return pm.segs[0].can
	}
	if off >= pm.length {
		if len(pm.segs) == 0 {
			return pm.end
		}
		last := pm.segs[len(pm.segs)-1]
		return last.can + last.length
	}
	for _, s := range pm.segs {
		if off < s.disp+s.length {
			return s.can + (off - s.disp)
		}
	}
	return pm.end
}

// Position converts a canonical byte offset to a display position,
// clamping offsets that fall inside markup syntax.
func (m *SourceMap) Position(offset int) Position {
	if m == nil || len(m.paras) == 0 || offset <= 0 {
		return Position{}
	}
	for i, pm := range m.paras {
		if offset > pm.end {
			continue
		}
		if offset < pm.start {
			// Only reachable between lines; snap to the start of this one.
			return Position{Para: i}
		}
		return Position{Para: i, Offset: pm.locate(offset)}
	}
	last := len(m.paras) - 1
	return Position{Para: last, Offset: m.paras[last].length}
}

func (pm paraMap) locate(offset int) int {
	best, bestDist := 0, -1
	consider := func(disp, can int) {
		d := offset - can
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = disp, d
		}
	}
	for _, s := range pm.segs {
		if offset >= s.can && offset <= s.can+s.length {
			return s.disp + (offset - s.can)
		}
		consider(s.disp, s.can)
		consider(s.disp+s.length, s.can+s.length)
	}
	return best
}

// Len returns the canonical text length the map was built from.
func (m *SourceMap) Len() int {
	if m == nil {
		return 0
	}
	return m.total
}
