// Package richview is the formatted editing surface. It displays an
// overlay.View built by the sync controller and edits the markup.Document
// underneath it. While an overlay is shown it is read-only.
package richview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/quill/internal/markup"
	"github.com/zjrosen/quill/internal/overlay"
	"github.com/zjrosen/quill/internal/spell"
	"github.com/zjrosen/quill/internal/ui/cells"
)

// Result reports what a key did to the document.
type Result int

const (
	Unchanged Result = iota
	Edited
	Blocked // an edit was attempted on a read-only view
)

// Model is a formatted editor. It is used through a pointer because the
// sync controller writes to it directly.
type Model struct {
	doc      markup.Document
	view     overlay.View
	readOnly bool
	anchor   markup.Position
	caret    markup.Position
	markers  []spell.Marker

	focused bool
	width   int
	height  int
	top     int
	goalCol int

	zonePrefix string
	zoneLinks  map[string]string // zone id to URL
}

// New creates an empty editable surface. zonePrefix keeps link zone ids
// unique when several surfaces share the global zone manager.
func New(zonePrefix string) *Model {
	doc := markup.Empty()
	return &Model{
		doc:        doc,
		view:       overlay.Plain(doc),
		width:      40,
		height:     10,
		goalCol:    -1,
		zonePrefix: zonePrefix,
	}
}

// Document returns the document currently shown.
func (m *Model) Document() markup.Document { return m.doc }

// DisplayView returns the display view.
func (m *Model) DisplayView() overlay.View { return m.view }

// SetView installs a rebuilt document with its display view.
func (m *Model) SetView(doc markup.Document, view overlay.View, readOnly bool) {
	if len(doc.Paragraphs) == 0 {
		doc = markup.Empty()
	}
	m.doc, m.view, m.readOnly = doc, view, readOnly
	m.anchor = doc.Clamp(m.anchor)
	m.caret = doc.Clamp(m.caret)
	m.goalCol = -1
}

// ReadOnly reports whether edits are refused.
func (m *Model) ReadOnly() bool { return m.readOnly }

// Selection returns the anchor and caret.
func (m *Model) Selection() (markup.Position, markup.Position) { return m.anchor, m.caret }

// SetSelection places the anchor and caret.
func (m *Model) SetSelection(anchor, caret markup.Position) {
	m.anchor = m.doc.Clamp(anchor)
	m.caret = m.doc.Clamp(caret)
	m.goalCol = -1
}

// SetMarkers replaces the misspelling markers, given as offsets into the
// document's plain text.
func (m *Model) SetMarkers(ms []spell.Marker) { m.markers = ms }

// Focus focuses the surface.
func (m *Model) Focus() { m.focused = true }

// Blur removes focus.
func (m *Model) Blur() { m.focused = false }

// SetSize sets the display size in cells.
func (m *Model) SetSize(width, height int) {
	m.width = max(width, 1)
	m.height = max(height, 1)
}

// LinkAtCaret returns the URL of the navigable link under the caret.
func (m *Model) LinkAtCaret() (string, bool) {
	p := m.doc.Paragraphs[m.caret.Para]
	pos := 0
	for _, r := range p.Runs {
		end := pos + len(r.Text)
		if m.caret.Offset >= pos && m.caret.Offset < end && r.Navigable() {
			return r.URL, true
		}
		pos = end
	}
	return "", false
}

// LinkAt returns the URL of the link zone a mouse event falls in.
func (m *Model) LinkAt(msg tea.MouseMsg) (string, bool) {
	for id, url := range m.zoneLinks {
		if z := zone.Get(id); z != nil && z.InBounds(msg) {
			return url, true
		}
	}
	return "", false
}

// WordAtCaret returns the misspelling under or just before the caret, with
// its range in plain-text offsets.
func (m *Model) WordAtCaret() (spell.Marker, string, bool) {
	off := m.doc.OffsetOf(m.caret)
	text := m.doc.PlainText()
	for _, mk := range m.markers {
		if off >= mk.Start && off <= mk.Start+mk.Length && mk.Start+mk.Length <= len(text) {
			return mk, text[mk.Start : mk.Start+mk.Length], true
		}
	}
	return spell.Marker{}, "", false
}

// ReplaceWord swaps a single-paragraph plain-text range for s, keeping the
// style of the run it falls in. It refuses on a read-only view.
func (m *Model) ReplaceWord(mk spell.Marker, s string) bool {
	if m.readOnly {
		return false
	}
	start := m.doc.PositionAt(mk.Start)
	end := m.doc.PositionAt(mk.Start + mk.Length)
	if start.Para != end.Para {
		return false
	}
	if doc, ok := replaceInRun(m.doc, start.Para, start.Offset, end.Offset, s); ok {
		m.doc = doc
	} else {
		doc := markup.DeleteRange(m.doc, start.Para, start.Offset, end.Offset)
		m.doc, _ = markup.InsertText(doc, start, s)
	}
	m.caret = markup.Position{Para: start.Para, Offset: start.Offset + len(s)}
	m.anchor = m.caret
	m.view = overlay.Plain(m.doc)
	return true
}

// replaceInRun rewrites [start, end) when it lies inside a single run, so
// the replacement keeps that run's style.
func replaceInRun(doc markup.Document, para, start, end int, s string) (markup.Document, bool) {
	out := doc.Clone()
	pos := 0
	for i := range out.Paragraphs[para].Runs {
		r := &out.Paragraphs[para].Runs[i]
		rs, re := pos, pos+len(r.Text)
		if start >= rs && end <= re && start < re {
			r.Text = r.Text[:start-rs] + s + r.Text[end-rs:]
			return out, true
		}
		pos = re
	}
	return doc, false
}

// Update handles a key message.
func (m *Model) Update(msg tea.Msg) Result {
	if !m.focused {
		return Unchanged
	}
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return Unchanged
	}

	vertical := false
	res := Unchanged
	switch km.Type {
	case tea.KeyLeft:
		m.caret = m.stepLeft()
	case tea.KeyRight:
		m.caret = m.stepRight()
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
		m.caret.Offset = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		m.caret.Offset = m.doc.Paragraphs[m.caret.Para].Len()
	case tea.KeyEnter:
		res = m.edit(func() { m.doc, m.caret = markup.SplitParagraph(m.doc, m.caret) })
	case tea.KeyBackspace:
		res = m.edit(m.backspace)
	case tea.KeyDelete:
		res = m.edit(m.deleteForward)
	case tea.KeySpace:
		res = m.edit(func() { m.insert(" ") })
	case tea.KeyTab:
		res = m.edit(func() { m.insert("\t") })
	case tea.KeyRunes:
		text := strings.ReplaceAll(string(km.Runes), "\r\n", "\n")
		res = m.edit(func() { m.insert(text) })
	}
	if !vertical {
		m.goalCol = -1
	}
	m.anchor = m.caret
	return res
}

func (m *Model) edit(fn func()) Result {
	if m.readOnly {
		return Blocked
	}
	before := markup.Serialize(m.doc)
	fn()
	m.view = overlay.Plain(m.doc)
	if markup.Serialize(m.doc) == before {
		return Unchanged
	}
	return Edited
}

// insert types text at the caret; newlines split paragraphs.
func (m *Model) insert(text string) {
	for i, part := range strings.Split(text, "\n") {
		if i > 0 {
			m.doc, m.caret = markup.SplitParagraph(m.doc, m.caret)
		}
		m.doc, m.caret = markup.InsertText(m.doc, m.caret, part)
	}
}

func (m *Model) backspace() {
	if m.caret.Offset == 0 {
		m.doc, m.caret = markup.JoinParagraphs(m.doc, m.caret.Para)
		return
	}
	line := m.doc.Paragraphs[m.caret.Para].Text()
	start := cells.PrevBoundary(line, m.caret.Offset)
	m.doc = markup.DeleteRange(m.doc, m.caret.Para, start, m.caret.Offset)
	m.caret.Offset = start
}

func (m *Model) deleteForward() {
	line := m.doc.Paragraphs[m.caret.Para].Text()
	if m.caret.Offset >= len(line) {
		m.doc, _ = markup.JoinParagraphs(m.doc, m.caret.Para+1)
		return
	}
	end := cells.NextBoundary(line, m.caret.Offset)
	m.doc = markup.DeleteRange(m.doc, m.caret.Para, m.caret.Offset, end)
}

func (m *Model) stepLeft() markup.Position {
	if m.caret.Offset > 0 {
		line := m.doc.Paragraphs[m.caret.Para].Text()
		return markup.Position{Para: m.caret.Para, Offset: cells.PrevBoundary(line, m.caret.Offset)}
	}
	if m.caret.Para > 0 {
		p := m.caret.Para - 1
		return markup.Position{Para: p, Offset: m.doc.Paragraphs[p].Len()}
	}
	return m.caret
}

func (m *Model) stepRight() markup.Position {
	line := m.doc.Paragraphs[m.caret.Para].Text()
	if m.caret.Offset < len(line) {
		return markup.Position{Para: m.caret.Para, Offset: cells.NextBoundary(line, m.caret.Offset)}
	}
	if m.caret.Para < len(m.doc.Paragraphs)-1 {
		return markup.Position{Para: m.caret.Para + 1}
	}
	return m.caret
}

func (m *Model) moveVertical(delta int) {
	lines := make([][]cells.Cell, len(m.doc.Paragraphs))
	for i, p := range m.doc.Paragraphs {
		lines[i] = cells.Split(p.Text())
	}
	rows := cells.Layout(lines, m.width)
	r := cells.Locate(rows, m.caret.Para, m.caret.Offset)
	if m.goalCol < 0 {
		m.goalCol = cells.ColumnOf(rows[r].Cells, m.caret.Offset)
	}
	target := max(0, min(r+delta, len(rows)-1))
	if target == r {
		if delta < 0 {
			m.caret = markup.Position{}
		} else {
			last := len(m.doc.Paragraphs) - 1
			m.caret = markup.Position{Para: last, Offset: m.doc.Paragraphs[last].Len()}
		}
		return
	}
	row := rows[target]
	m.caret = markup.Position{Para: row.Line, Offset: cells.OffsetAtColumn(row.Cells, m.goalCol, row.Last)}
}

// View renders the visible rows of the display view.
func (m *Model) View() string {
	m.zoneLinks = map[string]string{}
	lineStart := 0
	lines := make([][]cells.Cell, len(m.view.Lines))
	for i, l := range m.view.Lines {
		var cs []cells.Cell
		for _, f := range l.Fragments {
			fc := cells.Split(f.Text)
			for j := range fc {
				fc[j].Off += f.Start
				fc[j].Attr |= fragmentAttr(f)
			}
			if f.Navigable {
				id := fmt.Sprintf("%slink-%d-%d", m.zonePrefix, i, f.Start)
				m.zoneLinks[id] = f.URL
				for j := range fc {
					fc[j].Zone = id
				}
			}
			cs = append(cs, fc...)
		}
		text := l.Text()
		for _, mk := range m.markers {
			if mk.Start >= lineStart && mk.Start < lineStart+len(text) {
				cells.Paint(cs, mk.Start-lineStart, mk.Start+mk.Length-lineStart, cells.Misspelled)
			}
		}
		if m.focused && i == m.caret.Para {
			cs = cells.WithCaret(cs, m.caret.Offset)
		}
		lines[i] = cs
		lineStart += len(text) + 1
	}

	rows := cells.Layout(lines, m.width)
	m.top = cells.Scroll(m.top, cells.Locate(rows, m.caret.Para, m.caret.Offset), m.height)
	end := min(m.top+m.height, len(rows))
	out := make([]string, 0, m.height)
	for _, r := range rows[m.top:end] {
		out = append(out, cells.Render(r.Cells))
	}
	return strings.Join(out, "\n")
}

func fragmentAttr(f overlay.Fragment) cells.Attr {
	var a cells.Attr
	switch f.Style {
	case markup.KindBold:
		a = cells.Bold
	case markup.KindItalic:
		a = cells.Italic
	case markup.KindBoldItalic:
		a = cells.Bold | cells.Italic
	case markup.KindLink:
		a = cells.Link
	}
	if f.Emphasis {
		a |= cells.Emphasis | cells.Bold
	}
	return a
}
