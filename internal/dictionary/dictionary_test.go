package dictionary

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func testWords() *WordList {
	return NewWordList([]string{"hello", "help", "hell", "world", "Paris", "the", "then", "hello"})
}

func TestWordList_Check(t *testing.T) {
	wl := testWords()

	require.True(t, wl.Check("hello"))
	require.True(t, wl.Check("Hello"), "sentence case of a known word")
	require.True(t, wl.Check("HELLO"), "all caps of a known word")
	require.True(t, wl.Check("Paris"))
	require.True(t, wl.Check("PARIS"))
	require.False(t, wl.Check("paris"), "proper nouns keep their capital")
	require.False(t, wl.Check("helo"))
	require.True(t, wl.Check(""))
	require.Equal(t, 7, wl.Len(), "duplicates are collapsed")
}

func TestWordList_Suggest(t *testing.T) {
	wl := testWords()

	require.Equal(t, []string{"hello", "hell", "help"}, wl.Suggest("helo", 3))
	require.Equal(t, []string{"hello"}, wl.Suggest("helo", 1))
	require.Equal(t, []string{"The", "Then"}, wl.Suggest("Teh", 5), "suggestions follow the word's case")
	require.Empty(t, wl.Suggest("zzzzzzzz", 5))
	require.Nil(t, wl.Suggest("helo", 0))
}

func TestEditDistance(t *testing.T) {
	require.Equal(t, 3, editDistance("kitten", "sitting", 5))
	require.Equal(t, 1, editDistance("ab", "ba", 2), "adjacent transposition is one edit")
	require.Equal(t, 3, editDistance("abc", "", 2), "exceeding the limit reports limit+1")
	require.Equal(t, 0, editDistance("same", "same", 2))
	require.Equal(t, 1, editDistance("café", "cafe", 2), "distance counts runes")
}

func TestReadWordList(t *testing.T) {
	wl, err := ReadWordList(strings.NewReader("# comment\nalpha\n\n beta \n"))
	require.NoError(t, err)
	require.True(t, wl.Check("alpha"))
	require.True(t, wl.Check("beta"))
	require.False(t, wl.Check("# comment"))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words")
	require.NoError(t, os.WriteFile(path, []byte("quill\nink\n"), 0o600))

	wl, err := Open(path)
	require.NoError(t, err)
	require.True(t, wl.Check("quill"))

	_, err = Open(filepath.Join(dir, "missing"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnavailable))

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = Open(empty)
	require.ErrorIs(t, err, ErrUnavailable, "an empty list is as good as none")
}

func TestSet(t *testing.T) {
	s := NewSet("Quill", " ink ")
	require.True(t, s.Contains("quill"))
	require.True(t, s.Contains("INK"))

	s.Remove("ink")
	require.False(t, s.Contains("ink"))

	s.Add("")
	require.Len(t, s, 1)
}
