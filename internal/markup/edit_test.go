package markup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsertText(t *testing.T) {
	doc := Parse("Hello *world*", true)

	t.Run("at boundary prefers plain text", func(t *testing.T) {
		out, pos := InsertText(doc, Position{Para: 0, Offset: 6}, "big ")
		require.Equal(t, "Hello big *world*", Serialize(out))
		require.Equal(t, Position{Para: 0, Offset: 10}, pos)
	})

	t.Run("at end extends last run", func(t *testing.T) {
		out, pos := InsertText(doc, Position{Para: 0, Offset: 11}, "s")
		require.Equal(t, "Hello *worlds*", Serialize(out))
		require.Equal(t, Position{Para: 0, Offset: 12}, pos)
	})

	t.Run("inside styled run", func(t *testing.T) {
		out, _ := InsertText(doc, Position{Para: 0, Offset: 8}, "-")
		require.Equal(t, "Hello *wo-rld*", Serialize(out))
	})

	t.Run("clamps out of range position", func(t *testing.T) {
		out, pos := InsertText(doc, Position{Para: 4, Offset: 40}, "!")
		require.Equal(t, "Hello *world!*", Serialize(out))
		require.Equal(t, Position{Para: 0, Offset: 12}, pos)
	})

	t.Run("does not modify input", func(t *testing.T) {
		_, _ = InsertText(doc, Position{Para: 0, Offset: 0}, "x")
		require.Equal(t, "Hello *world*", Serialize(doc))
	})

	t.Run("after trailing link starts plain text", func(t *testing.T) {
		out, pos := InsertText(Parse("see example.com", true), Position{Para: 0, Offset: 15}, " now")
		require.Equal(t, "see example.com now", Serialize(out))
		require.Equal(t, Position{Para: 0, Offset: 19}, pos)
		require.Equal(t, []Run{Text("see "), {Kind: KindLink, Text: "example.com", URL: "https://example.com"}, Text(" now")}, out.Paragraphs[0].Runs)
	})

	t.Run("after trailing email starts plain text", func(t *testing.T) {
		out, _ := InsertText(Parse("mail bob@x.com", true), Position{Para: 0, Offset: 14}, "!")
		require.Equal(t, "mail bob@x.com!", Serialize(out))
	})

	t.Run("before leading link starts plain text", func(t *testing.T) {
		out, pos := InsertText(Parse("example.com rocks", true), Position{Para: 0, Offset: 0}, "visit ")
		require.Equal(t, "visit example.com rocks", Serialize(out))
		require.Equal(t, Position{Para: 0, Offset: 6}, pos)
		require.Equal(t, KindText, out.Paragraphs[0].Runs[0].Kind)
	})

	t.Run("next to explicit link keeps label", func(t *testing.T) {
		out, _ := InsertText(Parse("[docs](example.com)", true), Position{Para: 0, Offset: 4}, "!")
		require.Equal(t, "[docs](example.com)!", Serialize(out))
	})

	t.Run("inside link edits label", func(t *testing.T) {
		out, _ := InsertText(Parse("[docs](example.com)", true), Position{Para: 0, Offset: 2}, "-")
		require.Equal(t, "[do-cs](example.com)", Serialize(out))
	})

	t.Run("into empty document", func(t *testing.T) {
		out, _ := InsertText(Document{}, Position{}, "hi")
		require.Equal(t, "hi", Serialize(out))
	})
}

func TestDeleteRange(t *testing.T) {
	doc := Parse("Hello *world*", true)

	out := DeleteRange(doc, 0, 6, 11)
	require.Equal(t, "Hello ", Serialize(out), "emptied italic run must disappear with its delimiters")

	out = DeleteRange(doc, 0, 4, 8)
	require.Equal(t, "Hell*rld*", Serialize(out))

	out = DeleteRange(doc, 0, 0, 11)
	require.Equal(t, "", Serialize(out))
	require.Equal(t, []Run{Text("")}, out.Paragraphs[0].Runs)

	require.Equal(t, "Hello *world*", Serialize(DeleteRange(doc, 3, 0, 1)), "bad paragraph is a no-op")
	require.Equal(t, "Hello *world*", Serialize(DeleteRange(doc, 0, 5, 5)), "empty range is a no-op")
}

func TestSplitAndJoinParagraphs(t *testing.T) {
	doc := Parse("Hello *world*", true)

	split, pos := SplitParagraph(doc, Position{Para: 0, Offset: 8})
	require.Equal(t, "Hello *wo*\n*rld*", Serialize(split))
	require.Equal(t, Position{Para: 1, Offset: 0}, pos)

	joined, at := JoinParagraphs(split, 1)
	require.Equal(t, "Hello *world*", Serialize(joined), "same-style halves merge back together")
	require.Equal(t, Position{Para: 0, Offset: 8}, at)

	endSplit, _ := SplitParagraph(doc, Position{Para: 0, Offset: 11})
	require.Equal(t, "Hello *world*\n", Serialize(endSplit))

	same, _ := JoinParagraphs(doc, 0)
	require.True(t, same.Equal(doc), "joining the first paragraph is a no-op")
}

func TestJoinParagraphs_KeepsLinksSeparate(t *testing.T) {
	doc := Document{Paragraphs: []Paragraph{
		{Runs: []Run{Link("a.com", "a.com")}},
		{Runs: []Run{Link("b.com", "b.com")}},
	}}
	joined, _ := JoinParagraphs(doc, 1)
	require.Len(t, joined.Paragraphs, 1)
	require.Len(t, joined.Paragraphs[0].Runs, 2)
}
