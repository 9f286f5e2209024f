package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/dictionary"
	"github.com/zjrosen/quill/internal/markup"
	"github.com/zjrosen/quill/internal/overlay"
)

type env struct {
	dir    string
	config string
}

// newEnv writes a config that points the dictionary at files in a temp dir.
func newEnv(t *testing.T, words ...string) env {
	t.Helper()
	dir := t.TempDir()
	wordList := filepath.Join(dir, "words")
	if len(words) > 0 {
		require.NoError(t, os.WriteFile(wordList, []byte(strings.Join(words, "\n")+"\n"), 0o644))
	}
	cfg := filepath.Join(dir, "config.yaml")
	yaml := "dictionary:\n" +
		"  path: " + wordList + "\n" +
		"  custom_db: " + filepath.Join(dir, "dictionary.db") + "\n"
	require.NoError(t, os.WriteFile(cfg, []byte(yaml), 0o644))
	return env{dir: dir, config: cfg}
}

func (e env) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (e env) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root, opts := newRootCmd()
	t.Cleanup(opts.close)

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", e.config}, args...))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestCheck_ReportsMisspellings(t *testing.T) {
	e := newEnv(t, "hello", "world", "the")
	path := e.file(t, "note.md", "hello wrold\nthe helo\n")

	out, _, err := e.run(t, "", "check", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "2 misspelled words")
	require.Contains(t, out, path+":1:7: wrold")
	require.Contains(t, out, path+":2:5: helo")
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestCheck_NoSuggestions(t *testing.T) {
	e := newEnv(t, "hello", "world")
	path := e.file(t, "note.md", "hello wrold")

	out, _, err := e.run(t, "", "check", "-n", "0", path)
	require.Error(t, err)
	require.Equal(t, path+":1:7: wrold\n", out)
}

func TestCheck_CleanFile(t *testing.T) {
	e := newEnv(t, "hello", "world")
	path := e.file(t, "note.md", "**hello** *world* https://example.com NASA")

	out, _, err := e.run(t, "", "check", path)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCheck_CustomWordsAreAccepted(t *testing.T) {
	e := newEnv(t, "hello")
	path := e.file(t, "note.md", "hello quill")

	_, _, err := e.run(t, "", "check", path)
	require.Error(t, err)

	_, _, err = e.run(t, "", "dict", "add", "quill")
	require.NoError(t, err)

	_, _, err = e.run(t, "", "check", path)
	require.NoError(t, err)
}

func TestCheck_NoDictionary(t *testing.T) {
	e := newEnv(t)
	path := e.file(t, "note.md", "anything")

	_, _, err := e.run(t, "", "check", path)
	require.ErrorIs(t, err, dictionary.ErrUnavailable)
}

func TestLinks(t *testing.T) {
	e := newEnv(t)
	path := e.file(t, "note.md", "see example.com and [docs](https://x.org/d)\nmail bob@x.com")

	out, _, err := e.run(t, "", "links", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "1:5 4-15 https://example.com", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "1:21 20-"), lines[1])
	require.True(t, strings.HasSuffix(lines[1], "https://x.org/d"), lines[1])
	require.Equal(t, "2:6 49-58 mailto:bob@x.com", lines[2])
}

func TestLinks_AutoLinkOff(t *testing.T) {
	e := newEnv(t)
	path := e.file(t, "note.md", "see example.com and [docs](https://x.org/d)")

	out, _, err := e.run(t, "", "links", "--auto-link=false", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "https://x.org/d")
}

func TestRender_Plain(t *testing.T) {
	e := newEnv(t)
	path := e.file(t, "note.md", "**bold** and *it* at [docs](https://x.org)")

	out, _, err := e.run(t, "", "render", "--plain", path)
	require.NoError(t, err)
	require.Equal(t, "bold and it at docs\n", out)
}

func TestRender_Stdin(t *testing.T) {
	e := newEnv(t)

	out, _, err := e.run(t, "***both*** words\nsecond", "render", "--plain")
	require.NoError(t, err)
	require.Equal(t, "both words\nsecond\n", out)
}

func TestRender_Wraps(t *testing.T) {
	e := newEnv(t)

	out, _, err := e.run(t, "one two three four", "render", "--plain", "--width", "9", "-")
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		require.LessOrEqual(t, len(line), 9, "line %q", line)
	}
	require.Equal(t, "one two three four", strings.Join(strings.Fields(out), " "))
}

func TestRender_BadStrength(t *testing.T) {
	e := newEnv(t)

	_, _, err := e.run(t, "text", "render", "--bionic", "--strength", "extreme")
	require.Error(t, err)
}

func TestRenderView_BionicEmphasis(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)

	view := overlay.Apply(markup.Parse("reading quickly", false), overlay.Medium)
	out := renderView(r, view, 0)
	require.Contains(t, out, "\x1b[1m")
	require.Equal(t, "reading quickly", ansi.Strip(out))

	plain := renderView(r, overlay.Plain(markup.Parse("reading quickly", false)), 0)
	require.Equal(t, "reading quickly", plain)
}

func TestDict_AddListRemove(t *testing.T) {
	e := newEnv(t)

	out, _, err := e.run(t, "", "dict", "add", "quill", "bubbletea")
	require.NoError(t, err)
	require.Equal(t, "added quill\nadded bubbletea\n", out)

	out, _, err = e.run(t, "", "dict", "list")
	require.NoError(t, err)
	require.Equal(t, "quill\nbubbletea\n", out)

	out, _, err = e.run(t, "", "dict", "list", "--long")
	require.NoError(t, err)
	require.Contains(t, out, "\tquill\n")

	out, _, err = e.run(t, "", "dict", "rm", "quill")
	require.NoError(t, err)
	require.Equal(t, "removed quill\n", out)

	out, _, err = e.run(t, "", "dict", "list")
	require.NoError(t, err)
	require.Equal(t, "bubbletea\n", out)
}

func TestDict_RemoveMissing(t *testing.T) {
	e := newEnv(t)

	_, errOut, err := e.run(t, "", "dict", "remove", "ghost")
	require.Error(t, err)
	require.Contains(t, errOut, "ghost is not in the dictionary")
}

func TestApplyEditorFlags(t *testing.T) {
	root, _ := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--bionic", "--strength", "strong", "--no-spell", "--view", "formatted"}))

	cfg := config.Defaults()
	changed, err := applyEditorFlags(root, &cfg)
	require.NoError(t, err)
	require.True(t, changed)
	require.True(t, cfg.Bionic.Enabled)
	require.Equal(t, overlay.Strong, cfg.Bionic.ParsedStrength())
	require.False(t, cfg.Editor.SpellCheck)
	require.True(t, cfg.Editor.AutoLink)
	require.Equal(t, config.ViewFormatted, cfg.Editor.DefaultView)
}

func TestApplyEditorFlags_NoneSet(t *testing.T) {
	root, _ := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--no-watch"}))

	cfg := config.Defaults()
	changed, err := applyEditorFlags(root, &cfg)
	require.NoError(t, err)
	require.False(t, changed)
	require.False(t, cfg.Watch.Enabled)
	require.Equal(t, config.Defaults().Editor, cfg.Editor)
}

func TestApplyEditorFlags_Invalid(t *testing.T) {
	root, _ := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--view", "sideways"}))

	cfg := config.Defaults()
	_, err := applyEditorFlags(root, &cfg)
	require.Error(t, err)
}

func TestLineCol(t *testing.T) {
	text := "ab\ncafé x\n"
	line, col := lineCol(text, 0)
	require.Equal(t, []int{1, 1}, []int{line, col})
	line, col = lineCol(text, strings.Index(text, "x"))
	require.Equal(t, []int{2, 6}, []int{line, col})
}
