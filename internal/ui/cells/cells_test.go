package cells

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSplit_Graphemes(t *testing.T) {
	cs := Split("añ🙂é")
	require.Len(t, cs, 4)
	require.Equal(t, []int{0, 1, 3, 7}, []int{cs[0].Off, cs[1].Off, cs[2].Off, cs[3].Off})
	require.Equal(t, 2, cs[2].Width, "emoji takes two columns")
	require.Equal(t, "é", cs[3].Text, "combining accent stays with its base")
	require.Equal(t, len("añ🙂é"), cs[3].End())
}

func TestSplit_Lossless(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.String().Draw(rt, "s")
		require.Equal(rt, s, Text(Split(s)))
	})
}

func TestPaint(t *testing.T) {
	cs := Split("hello world")
	Paint(cs, 6, 11, Misspelled)
	for _, c := range cs {
		require.Equal(t, c.Off >= 6, c.Attr&Misspelled != 0, "cell %q", c.Text)
	}
}

func TestWithCaret(t *testing.T) {
	cs := WithCaret(Split("ab"), 1)
	require.Len(t, cs, 2)
	require.NotZero(t, cs[1].Attr&Caret)

	cs = WithCaret(Split("ab"), 2)
	require.Len(t, cs, 3, "caret at end gets its own cell")
	require.Equal(t, 2, cs[2].Off)

	cs = WithCaret(nil, 0)
	require.Len(t, cs, 1)
}

func TestWrap(t *testing.T) {
	rows := Wrap(Split("abcdefg"), 3)
	require.Len(t, rows, 3)
	require.Equal(t, "abc", Text(rows[0]))
	require.Equal(t, "g", Text(rows[2]))

	require.Len(t, Wrap(nil, 10), 1, "empty line still occupies a row")

	wide := Wrap(Split("a🙂🙂"), 2)
	require.Equal(t, []string{"a", "🙂", "🙂"}, []string{Text(wide[0]), Text(wide[1]), Text(wide[2])})
}

func TestRowOf(t *testing.T) {
	rows := Wrap(Split("abcdef"), 3)
	require.Equal(t, 0, RowOf(rows, 2))
	require.Equal(t, 1, RowOf(rows, 3))
	require.Equal(t, 1, RowOf(rows, 6), "end of line belongs to the last row")
}

func TestBoundaries(t *testing.T) {
	line := "a🙂b"
	require.Equal(t, 1, NextBoundary(line, 0))
	require.Equal(t, 5, NextBoundary(line, 1))
	require.Equal(t, 1, PrevBoundary(line, 5))
	require.Equal(t, 0, PrevBoundary(line, 1))
	require.Equal(t, 0, PrevBoundary(line, 0))
	require.Equal(t, len(line), NextBoundary(line, len(line)))
}

func TestColumns(t *testing.T) {
	row := Split("a🙂b")
	require.Equal(t, 3, ColumnOf(row, 5))
	require.Equal(t, 1, OffsetAtColumn(row, 2, true), "second half of a wide cell maps to its start")
	require.Equal(t, len("a🙂b"), OffsetAtColumn(row, 10, true))
	require.Equal(t, 5, OffsetAtColumn(row, 10, false))
}

func TestRender_PlainTextSurvives(t *testing.T) {
	cs := Split("bold and link")
	Paint(cs, 0, 4, Bold)
	Paint(cs, 9, 13, Link)
	out := Render(cs)
	require.Contains(t, stripANSI(out), "bold and link")
}

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func TestLayoutAndLocate(t *testing.T) {
	lines := [][]Cell{Split("abcdef"), Split(""), Split("xy")}
	rows := Layout(lines, 4)
	require.Len(t, rows, 4)
	require.Equal(t, 0, rows[1].Line)
	require.True(t, rows[1].Last)
	require.False(t, rows[0].Last)

	require.Equal(t, 0, Locate(rows, 0, 3))
	require.Equal(t, 1, Locate(rows, 0, 4))
	require.Equal(t, 1, Locate(rows, 0, 6))
	require.Equal(t, 2, Locate(rows, 1, 0))
	require.Equal(t, 3, Locate(rows, 2, 2))
}

func TestScroll(t *testing.T) {
	require.Equal(t, 0, Scroll(0, 3, 5))
	require.Equal(t, 2, Scroll(0, 6, 5))
	require.Equal(t, 1, Scroll(4, 1, 5))
}
