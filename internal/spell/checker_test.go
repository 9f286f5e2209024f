package spell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/dictionary"
	"github.com/zjrosen/quill/internal/mocks"
)

func TestSkip(t *testing.T) {
	custom := dictionary.NewSet("quill")
	tests := []struct {
		word string
		want SkipReason
	}{
		{"Quill", SkipCustom},
		{"https://example.com", SkipURL},
		{"example.com", SkipURL},
		{"bob@example.com", SkipEmail},
		{"abc123", SkipMixedAlphanumeric},
		{"123abc", SkipMixedAlphanumeric},
		{"NASA", SkipAllCaps},
		{"2026", SkipDigits},
		{"snake_case", SkipUnderscore},
		{"I", NotSkipped},
		{"hello", NotSkipped},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Skip(tt.word, custom), "word %q", tt.word)
	}
	require.Equal(t, NotSkipped, Skip("quill", nil), "nil custom dictionary is allowed")
}

func TestChecker_Markers(t *testing.T) {
	engine := dictionary.NewWordList([]string{"hello", "world", "the", "Rhea"})
	c := NewChecker(engine, dictionary.NewSet("quill"))

	text := "'helo' world, quill NASA x_y Rhea's teh"
	markers := c.Markers(text)
	require.Equal(t, []Marker{{Start: 1, Length: 4}, {Start: 36, Length: 3}}, markers)
	require.Equal(t, "helo", text[1:5])
	require.Equal(t, "teh", text[36:39])
}

func TestChecker_SkipListRunsBeforeEngine(t *testing.T) {
	engine := mocks.NewMockEngine(t)
	engine.EXPECT().Check("word").Return(true)

	c := NewChecker(engine, dictionary.NewSet("custom"))
	toks := c.Check("custom ABC 12 a_b x1 example.com word")
	require.Len(t, toks, 7)
	for _, tok := range toks {
		require.True(t, tok.Correct, "token %q", tok.Word)
	}
}

func TestChecker_Disabled(t *testing.T) {
	c := NewChecker(nil, nil)
	require.False(t, c.Enabled())
	require.Nil(t, c.Check("anything"))
	require.Nil(t, c.Markers("anything"))

	_, err := c.Suggest(context.Background(), "teh", 3)
	require.ErrorIs(t, err, dictionary.ErrUnavailable)

	var nilChecker *Checker
	require.False(t, nilChecker.Enabled())
}

func TestChecker_DisableAtRuntime(t *testing.T) {
	c := NewChecker(dictionary.NewWordList([]string{"a"}), nil)
	require.True(t, c.Enabled())
	c.Disable(dictionary.ErrUnavailable)
	require.False(t, c.Enabled())
	require.Nil(t, c.Markers("zzz"))
}

func TestChecker_SuggestIsCached(t *testing.T) {
	engine := mocks.NewMockEngine(t)
	engine.EXPECT().Suggest("teh", 3).Return([]string{"the", "ten"}).Once()

	c := NewChecker(engine, nil)
	for range 3 {
		got, err := c.Suggest(context.Background(), "teh", 3)
		require.NoError(t, err)
		require.Equal(t, []string{"the", "ten"}, got)
	}

	require.NoError(t, c.InvalidateSuggestions(context.Background()))
	engine.EXPECT().Suggest("teh", 3).Return([]string{"the"}).Once()
	got, err := c.Suggest(context.Background(), "teh", 3)
	require.NoError(t, err)
	require.Equal(t, []string{"the"}, got)
}

func TestChecker_WithoutCache(t *testing.T) {
	engine := mocks.NewMockEngine(t)
	engine.EXPECT().Suggest("teh", 1).Return([]string{"the"}).Twice()

	c := NewChecker(engine, nil, WithoutCache())
	for range 2 {
		_, err := c.Suggest(context.Background(), "teh", 1)
		require.NoError(t, err)
	}
}
