// Package sourceview is the plain-text editing surface. It shows the
// canonical text with its markup syntax highlighted, underlines detected
// links and misspellings, and reports user edits to its owner.
package sourceview

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quill/internal/links"
	"github.com/zjrosen/quill/internal/markup"
	"github.com/zjrosen/quill/internal/spell"
	"github.com/zjrosen/quill/internal/ui/cells"
)

// Model is a multi-line text editor over a byte-addressed buffer. It is
// used through a pointer because the sync controller writes to it
// directly.
type Model struct {
	value   string
	caret   int // byte offset, always on a grapheme boundary
	focused bool
	width   int
	height  int
	top     int // first visible row
	goalCol int // display column kept across vertical moves, -1 when unset

	links   []links.Link
	markers []spell.Marker
}

// New creates an empty, unfocused editor.
func New() *Model {
	return &Model{width: 40, height: 10, goalCol: -1}
}

// Text returns the buffer.
func (m *Model) Text() string { return m.value }

// SetText replaces the buffer and clamps the caret.
func (m *Model) SetText(s string) {
	m.value = s
	m.caret = min(m.caret, len(s))
	m.goalCol = -1
}

// Caret returns the caret byte offset.
func (m *Model) Caret() int { return m.caret }

// SetCaret moves the caret, clamped to the buffer.
func (m *Model) SetCaret(off int) {
	m.caret = max(0, min(off, len(m.value)))
	m.goalCol = -1
}

// SetLinks replaces the detected links.
func (m *Model) SetLinks(ls []links.Link) { m.links = ls }

// SetMarkers replaces the misspelling markers.
func (m *Model) SetMarkers(ms []spell.Marker) { m.markers = ms }

// Links returns the detected links.
func (m *Model) Links() []links.Link { return m.links }

// LinkAtCaret returns the link under the caret.
func (m *Model) LinkAtCaret() (links.Link, bool) { return links.At(m.links, m.caret) }

// WordAtCaret returns the misspelling marker under or just before the caret.
func (m *Model) WordAtCaret() (spell.Marker, string, bool) {
	for _, mk := range m.markers {
		if m.caret >= mk.Start && m.caret <= mk.Start+mk.Length {
			return mk, m.value[mk.Start : mk.Start+mk.Length], true
		}
	}
	return spell.Marker{}, "", false
}

// ReplaceRange swaps bytes [start, end) for s and puts the caret after it.
func (m *Model) ReplaceRange(start, end int, s string) {
	m.value = m.value[:start] + s + m.value[end:]
	m.SetCaret(start + len(s))
}

// Focus focuses the editor.
func (m *Model) Focus() { m.focused = true }

// Blur removes focus.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the editor has focus.
func (m *Model) Focused() bool { return m.focused }

// SetSize sets the display size in cells.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 1)
	m.height = max(height, 1)
}

// Update handles a key message and reports whether the buffer changed.
func (m *Model) Update(msg tea.Msg) bool {
	if !m.focused {
		return false
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return false
	}

	before := m.value
	vertical := false
	switch km.Type {
	case tea.KeyLeft:
		if km.Alt {
			m.caret = prevWordStart(m.value, m.caret)
		} else {
			m.caret = cells.PrevBoundary(m.value, m.caret)
		}
	case tea.KeyRight:
		if km.Alt {
			m.caret = nextWordEnd(m.value, m.caret)
		} else {
			m.caret = cells.NextBoundary(m.value, m.caret)
		}
	case tea.KeyUp:
		m.moveVertical(-1)
		vertical = true
	case tea.KeyDown:
		m.moveVertical(1)
		vertical = true
	case tea.KeyPgUp:
		m.moveVertical(-m.height)
		vertical = true
	case tea.KeyPgDown:
		m.moveVertical(m.height)
		vertical = true
	case tea.KeyHome, tea.KeyCtrlA:
		m.caret = m.lineStart()
	case tea.KeyEnd, tea.KeyCtrlE:
		m.caret = m.lineEnd()
	case tea.KeyEnter:
		m.insert("\n")
	case tea.KeyBackspace:
		if m.caret > 0 {
			start := cells.PrevBoundary(m.value, m.caret)
			m.value = m.value[:start] + m.value[m.caret:]
			m.caret = start
		}
	case tea.KeyDelete:
		if m.caret < len(m.value) {
			end := cells.NextBoundary(m.value, m.caret)
			m.value = m.value[:m.caret] + m.value[end:]
		}
	case tea.KeyCtrlK:
		m.value = m.value[:m.caret] + m.value[m.lineEnd():]
	case tea.KeyCtrlU:
		start := m.lineStart()
		m.value = m.value[:start] + m.value[m.caret:]
		m.caret = start
	case tea.KeyTab:
		m.insert("\t")
	case tea.KeySpace:
		m.insert(" ")
	case tea.KeyRunes:
		if km.Alt && len(km.Runes) == 1 {
			switch km.Runes[0] {
			case 'f':
				m.caret = nextWordEnd(m.value, m.caret)
				return false
			case 'b':
				m.caret = prevWordStart(m.value, m.caret)
				return false
			}
		}
		// Pasted text may carry CRLF line endings.
		m.insert(strings.ReplaceAll(string(km.Runes), "\r\n", "\n"))
	}
	if !vertical {
		m.goalCol = -1
	}
	return m.value != before
}

func (m *Model) insert(s string) {
	m.value = m.value[:m.caret] + s + m.value[m.caret:]
	m.caret += len(s)
}

func (m *Model) lineStart() int {
	return strings.LastIndexByte(m.value[:m.caret], '\n') + 1
}

func (m *Model) lineEnd() int {
	if i := strings.IndexByte(m.value[m.caret:], '\n'); i >= 0 {
		return m.caret + i
	}
	return len(m.value)
}

// lines returns the buffer's lines and the byte offset each starts at.
func (m *Model) lines() ([]string, []int) {
	ls := strings.Split(m.value, "\n")
	starts := make([]int, len(ls))
	off := 0
	for i, l := range ls {
		starts[i] = off
		off += len(l) + 1
	}
	return ls, starts
}

// caretLine returns the caret's line index and offset within it.
func caretLine(starts []int, caret int) (int, int) {
	line := 0
	for i, s := range starts {
		if s > caret {
			break
		}
		line = i
	}
	return line, caret - starts[line]
}

func (m *Model) layout() []cells.Row {
	ls, _ := m.lines()
	split := make([][]cells.Cell, len(ls))
	for i, l := range ls {
		split[i] = cells.Split(l)
	}
	return cells.Layout(split, m.width)
}

func (m *Model) moveVertical(delta int) {
	rows := m.layout()
	_, starts := m.lines()
	line, off := caretLine(starts, m.caret)
	r := cells.Locate(rows, line, off)
	if m.goalCol < 0 {
		m.goalCol = cells.ColumnOf(rows[r].Cells, off)
	}
	target := max(0, min(r+delta, len(rows)-1))
	if target == r {
		if delta < 0 {
			m.caret = 0
		} else {
			m.caret = len(m.value)
		}
		return
	}
	row := rows[target]
	m.caret = starts[row.Line] + cells.OffsetAtColumn(row.Cells, m.goalCol, row.Last)
}

// View renders the visible rows.
func (m *Model) View() string {
	ls, starts := m.lines()
	caretLn, caretOff := caretLine(starts, m.caret)

	split := make([][]cells.Cell, len(ls))
	for i, l := range ls {
		cs := Highlight(l)
		lineEnd := starts[i] + len(l)
		for _, lk := range m.links {
			if lk.End > starts[i] && lk.Start < lineEnd && !lk.Explicit {
				cells.Paint(cs, lk.Start-starts[i], lk.End-starts[i], cells.Link)
			}
		}
		for _, mk := range m.markers {
			if mk.Start >= starts[i] && mk.Start < lineEnd {
				cells.Paint(cs, mk.Start-starts[i], mk.Start+mk.Length-starts[i], cells.Misspelled)
			}
		}
		if m.focused && i == caretLn {
			cs = cells.WithCaret(cs, caretOff)
		}
		split[i] = cs
	}

	rows := cells.Layout(split, m.width)
	m.top = cells.Scroll(m.top, cells.Locate(rows, caretLn, caretOff), m.height)
	end := min(m.top+m.height, len(rows))
	out := make([]string, 0, m.height)
	for _, r := range rows[m.top:end] {
		out = append(out, cells.Render(r.Cells))
	}
	return strings.Join(out, "\n")
}

// Highlight splits line into cells and colors its markup: delimiters are
// dimmed, emphasis is styled, link labels and targets are colored.
func Highlight(line string) []cells.Cell {
	cs := cells.Split(line)
	for _, sp := range markup.Scan(line, false) {
		switch sp.Kind {
		case markup.SpanBold, markup.SpanItalic, markup.SpanBoldItalic:
			d := delimWidth(sp.Kind)
			cells.Paint(cs, sp.Start, sp.Start+d, cells.Delimiter)
			cells.Paint(cs, sp.End-d, sp.End, cells.Delimiter)
			if sp.Kind != markup.SpanItalic {
				cells.Paint(cs, sp.Start+d, sp.End-d, cells.Bold)
			}
			if sp.Kind != markup.SpanBold {
				cells.Paint(cs, sp.Start+d, sp.End-d, cells.Italic)
			}
		case markup.SpanLink:
			labelEnd := sp.Start + 1 + len(sp.Run.Text)
			cells.Paint(cs, sp.Start, sp.Start+1, cells.Delimiter)
			cells.Paint(cs, sp.Start+1, labelEnd, cells.Link)
			cells.Paint(cs, labelEnd, labelEnd+2, cells.Delimiter)
			cells.Paint(cs, labelEnd+2, sp.End-1, cells.Target)
			cells.Paint(cs, sp.End-1, sp.End, cells.Delimiter)
		}
	}
	return cs
}

func delimWidth(k markup.SpanKind) int {
	switch k {
	case markup.SpanBoldItalic:
		return 3
	case markup.SpanBold:
		return 2
	default:
		return 1
	}
}

func nextWordEnd(s string, pos int) int {
	for pos < len(s) && !isWordByte(s[pos]) {
		pos++
	}
	for pos < len(s) && isWordByte(s[pos]) {
		pos++
	}
	return pos
}

func prevWordStart(s string, pos int) int {
	for pos > 0 && !isWordByte(s[pos-1]) {
		pos--
	}
	for pos > 0 && isWordByte(s[pos-1]) {
		pos--
	}
	return pos
}

// isWordByte treats every non-ASCII byte as part of a word so word motions
// never stop inside a multi-byte character.
func isWordByte(c byte) bool {
	return c >= 0x80 || c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}
