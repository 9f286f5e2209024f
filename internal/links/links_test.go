package links

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/quill/internal/markup"
)

func TestDetect(t *testing.T) {
	text := "See [docs](example.com/docs) or\nwww.example.org and bob@example.com."
	got := Detect(text, true)

	require.Equal(t, []Link{
		{Start: 4, End: 28, URL: "https://example.com/docs", DisplayText: "docs", Explicit: true},
		{Start: 32, End: 47, URL: "https://www.example.org", DisplayText: "www.example.org"},
		{Start: 52, End: 67, URL: "mailto:bob@example.com", DisplayText: "bob@example.com"},
	}, got)

	for _, l := range got {
		require.Equal(t, l.Len(), len(text[l.Start:l.End]))
	}
	require.Equal(t, "[docs](example.com/docs)", text[got[0].Start:got[0].End])
	require.Equal(t, "www.example.org", text[got[1].Start:got[1].End])
}

func TestDetect_AutoLinkOff(t *testing.T) {
	got := Detect("[a](b.com) and c.com", false)
	require.Len(t, got, 1)
	require.True(t, got[0].Explicit)
}

func TestDetect_EmphasisWins(t *testing.T) {
	require.Empty(t, Detect("*[a](b.com)*", true), "link text inside italics is not a link run")
}

func TestDetect_EmailInsideURL(t *testing.T) {
	text := "go https://x.com/u/bob@y.com now"
	require.Equal(t, []Link{
		{Start: 3, End: 28, URL: "https://x.com/u/bob@y.com", DisplayText: "https://x.com/u/bob@y.com"},
	}, Detect(text, true))
}

func TestAt(t *testing.T) {
	ls := Detect("x example.com y", true)
	l, ok := At(ls, 5)
	require.True(t, ok)
	require.Equal(t, "https://example.com", l.URL)

	_, ok = At(ls, 0)
	require.False(t, ok)
	_, ok = At(ls, 13)
	require.False(t, ok, "end offset is exclusive")
}

// Every detected range must be a link run when the same text is parsed,
// and its text must serialize back to exactly the detected markup.
func TestDetect_AgreesWithParser(t *testing.T) {
	runes := []rune("ab *_[]().@:/\ncomw")
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringOfN(rapid.SampledFrom(runes), 0, 60, -1).Draw(rt, "text")
		doc := markup.Parse(text, true)

		var runs []markup.Run
		for _, p := range doc.Paragraphs {
			for _, r := range p.Runs {
				if r.Kind == markup.KindLink {
					runs = append(runs, r)
				}
			}
		}
		got := Detect(text, true)
		require.Len(rt, got, len(runs))
		for i, l := range got {
			require.Equal(rt, runs[i].URL, l.URL)
			require.Equal(rt, runs[i].Text, l.DisplayText)
			one := markup.Document{Paragraphs: []markup.Paragraph{{Runs: []markup.Run{runs[i]}}}}
			require.Equal(rt, text[l.Start:l.End], markup.Serialize(one))
		}
	})
}
