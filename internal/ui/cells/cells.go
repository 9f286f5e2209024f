// Package cells lays out editor text as grapheme cells so both editing
// surfaces can share caret movement, wrapping and styling.
//
// Three units are in play: byte offsets (what the editor core speaks),
// grapheme clusters (what the caret steps over) and display columns (what
// the terminal lays out). A Cell is one grapheme cluster tagged with its
// byte offset and its display width.
package cells

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/quill/internal/ui/styles"
)

// Attr is a set of display attributes.
type Attr uint16

const (
	Bold Attr = 1 << iota
	Italic
	Link
	Delimiter
	Target
	Misspelled
	Emphasis
	Caret
	Muted
)

// Cell is one grapheme cluster of a line.
type Cell struct {
	Text  string
	Off   int // byte offset of the cluster within its line
	Width int
	Attr  Attr
	Zone  string // bubblezone id, empty when not clickable
}

// End returns the byte offset just past the cell.
func (c Cell) End() int { return c.Off + len(c.Text) }

// Split breaks line into cells. Zero-width clusters still get a cell so no
// byte of the line is lost.
func Split(line string) []Cell {
	out := make([]Cell, 0, len(line))
	off := 0
	state := -1
	s := line
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		out = append(out, Cell{Text: cluster, Off: off, Width: runewidth.StringWidth(cluster)})
		off += len(cluster)
		s = rest
		state = newState
	}
	return out
}

// Paint adds a to every cell that starts in [start, end).
func Paint(cs []Cell, start, end int, a Attr) {
	for i := range cs {
		if cs[i].Off >= start && cs[i].Off < end {
			cs[i].Attr |= a
		}
	}
}

// SetZone tags every cell that starts in [start, end) with id.
func SetZone(cs []Cell, start, end int, id string) {
	for i := range cs {
		if cs[i].Off >= start && cs[i].Off < end {
			cs[i].Zone = id
		}
	}
}

// WithCaret marks the cell at off as the caret, appending a blank cell when
// off is at the end of the line.
func WithCaret(cs []Cell, off int) []Cell {
	for i := range cs {
		if cs[i].Off == off || (cs[i].Off < off && off < cs[i].End()) {
			cs[i].Attr |= Caret
			return cs
		}
	}
	end := 0
	if n := len(cs); n > 0 {
		end = cs[n-1].End()
	}
	return append(cs, Cell{Text: " ", Off: end, Width: 1, Attr: Caret})
}

// Wrap splits cells into rows no wider than width. An empty line yields a
// single empty row.
func Wrap(cs []Cell, width int) [][]Cell {
	if width < 1 {
		width = 1
	}
	rows := [][]Cell{nil}
	w := 0
	for _, c := range cs {
		last := len(rows) - 1
		if w+c.Width > width && len(rows[last]) > 0 {
			rows = append(rows, nil)
			last++
			w = 0
		}
		rows[last] = append(rows[last], c)
		w += c.Width
	}
	return rows
}

// RowOf returns the index of the row holding byte offset off. An offset
// past the last cell belongs to the last row.
func RowOf(rows [][]Cell, off int) int {
	for i, row := range rows {
		if len(row) > 0 && off < row[len(row)-1].End() {
			return i
		}
	}
	return len(rows) - 1
}

// Render draws cells, merging neighbors with identical attributes.
func Render(cs []Cell) string {
	var b strings.Builder
	for i := 0; i < len(cs); {
		j := i + 1
		for j < len(cs) && cs[j].Attr == cs[i].Attr && cs[j].Zone == cs[i].Zone {
			j++
		}
		var text strings.Builder
		for _, c := range cs[i:j] {
			text.WriteString(c.Text)
		}
		s := text.String()
		if cs[i].Attr != 0 {
			s = StyleFor(cs[i].Attr).Render(s)
		}
		if cs[i].Zone != "" {
			s = zone.Mark(cs[i].Zone, s)
		}
		b.WriteString(s)
		i = j
	}
	return b.String()
}

// Text joins the cells' text without styling.
func Text(cs []Cell) string {
	var b strings.Builder
	for _, c := range cs {
		b.WriteString(c.Text)
	}
	return b.String()
}

// StyleFor maps attributes to a lipgloss style.
func StyleFor(a Attr) lipgloss.Style {
	st := lipgloss.NewStyle()
	switch {
	case a&Misspelled != 0:
		st = st.Inherit(styles.MisspelledStyle)
	case a&Link != 0:
		st = st.Inherit(styles.LinkStyle)
	case a&Target != 0:
		st = st.Inherit(styles.TargetStyle)
	case a&Delimiter != 0:
		st = st.Inherit(styles.DelimiterStyle)
	case a&Emphasis != 0:
		st = st.Inherit(styles.EmphasisStyle)
	case a&Muted != 0:
		st = st.Foreground(styles.TextMutedColor)
	}
	if a&Bold != 0 {
		st = st.Bold(true)
	}
	if a&Italic != 0 {
		st = st.Italic(true)
	}
	if a&Caret != 0 {
		st = st.Reverse(true)
	}
	return st
}

// PrevBoundary returns the start of the grapheme cluster before off.
func PrevBoundary(line string, off int) int {
	prev := 0
	for _, c := range Split(line) {
		if c.Off >= off {
			break
		}
		prev = c.Off
	}
	return prev
}

// NextBoundary returns the end of the grapheme cluster at off.
func NextBoundary(line string, off int) int {
	for _, c := range Split(line) {
		if c.End() > off {
			return c.End()
		}
	}
	return len(line)
}

// ColumnOf returns the display column of byte offset off within row.
func ColumnOf(row []Cell, off int) int {
	col := 0
	for _, c := range row {
		if c.Off >= off {
			break
		}
		col += c.Width
	}
	return col
}

// OffsetAtColumn returns the byte offset of the cell covering display
// column col in row. Past the end it returns the row's end when last is
// set, and the start of the row's final cell otherwise, so the caret stays
// on a soft-wrapped row.
func OffsetAtColumn(row []Cell, col int, last bool) int {
	w := 0
	for _, c := range row {
		if col < w+c.Width {
			return c.Off
		}
		w += c.Width
	}
	if len(row) == 0 {
		return 0
	}
	if last {
		return row[len(row)-1].End()
	}
	return row[len(row)-1].Off
}

// Row is one visual row of a wrapped line.
type Row struct {
	Line  int
	Cells []Cell
	Last  bool // final row of its line
}

// Layout wraps every line to width.
func Layout(lines [][]Cell, width int) []Row {
	var out []Row
	for i, l := range lines {
		wrapped := Wrap(l, width)
		for j, r := range wrapped {
			out = append(out, Row{Line: i, Cells: r, Last: j == len(wrapped)-1})
		}
	}
	return out
}

// Locate returns the index of the row showing byte offset off of line.
func Locate(rows []Row, line, off int) int {
	found := -1
	for i, r := range rows {
		if r.Line != line {
			if found >= 0 {
				break
			}
			continue
		}
		found = i
		if len(r.Cells) > 0 && off < r.Cells[len(r.Cells)-1].End() {
			return i
		}
	}
	return max(found, 0)
}

// Scroll returns the first visible row so that row caret is inside a
// window of height rows starting near top.
func Scroll(top, caret, height int) int {
	if height < 1 {
		height = 1
	}
	if caret < top {
		return caret
	}
	if caret >= top+height {
		return caret - height + 1
	}
	return top
}
