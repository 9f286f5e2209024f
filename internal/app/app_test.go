package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/dictionary"
	"github.com/zjrosen/quill/internal/editsync"
	"github.com/zjrosen/quill/internal/infrastructure/sqlite"
	"github.com/zjrosen/quill/internal/schedule"
	"github.com/zjrosen/quill/internal/spell"
	"github.com/zjrosen/quill/internal/store"
	"github.com/zjrosen/quill/internal/ui/suggest"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

type fakeOpener struct{ opened []string }

func (f *fakeOpener) Open(url string) error {
	f.opened = append(f.opened, url)
	return nil
}

type fixture struct {
	m      Model
	path   string
	opener *fakeOpener
	custom *dictionary.CustomDictionary
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Editor.AutoLink = true
	cfg.Editor.SpellCheck = true
	cfg.Editor.LinkDebounce = time.Millisecond
	cfg.Editor.SpellDebounce = time.Millisecond
	cfg.Editor.RedetectDebounce = time.Millisecond
	return cfg
}

func newFixture(t *testing.T, text string, mutate ...func(*Services)) *fixture {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "note.md")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))

	db, err := sqlite.NewDB(filepath.Join(dir, "dict.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	custom, err := dictionary.LoadCustom(context.Background(), db.WordRepository())
	require.NoError(t, err)

	words := dictionary.NewWordList([]string{"hello", "help", "world", "see", "the", "docs", "hi"})
	opener := &fakeOpener{}
	svc := Services{
		Config:  testConfig(),
		Store:   store.New(path),
		Checker: spell.NewChecker(words, custom),
		Custom:  custom,
		Opener:  opener,
	}
	for _, fn := range mutate {
		fn(&svc)
	}

	m, err := New(context.Background(), svc)
	require.NoError(t, err)
	t.Cleanup(m.Close)
	f := &fixture{m: m, path: path, opener: opener, custom: custom}
	f.settle(tea.WindowSizeMsg{Width: 80, Height: 20})
	return f
}

// run executes cmd and returns the messages it yields within a short wait.
// Listener commands block until the fixture closes, so they are dropped.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, run(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	next, cmd := f.m.Update(msg)
	f.m = next.(Model)
	return cmd
}

// settle sends msg and then delivers every timer it arms until the
// controller is idle. Other produced messages are returned.
func (f *fixture) settle(msg tea.Msg) []tea.Msg {
	var other []tea.Msg
	cmd := f.send(msg)
	for range 20 {
		var next []tea.Cmd
		for _, out := range run(cmd) {
			if fire, ok := out.(schedule.FireMsg); ok {
				next = append(next, f.send(fire))
				continue
			}
			other = append(other, out)
		}
		if len(next) == 0 {
			break
		}
		cmd = tea.Batch(next...)
	}
	return other
}

func (f *fixture) typeText(s string) {
	for _, r := range s {
		f.settle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (f *fixture) view() string {
	return ansi.Strip(f.m.View())
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestNew_LoadsDocument(t *testing.T) {
	f := newFixture(t, "Hello *world*")
	require.Equal(t, "Hello *world*", f.m.Controller().Canonical())
	require.Equal(t, editsync.SourceActive, f.m.Controller().State())
	require.False(t, f.m.Controller().Dirty())

	out := f.view()
	require.Contains(t, out, "Source · note.md")
	require.Contains(t, out, "Hello *world*")
	require.Contains(t, out, "SOURCE")
}

func TestNew_DefaultFormattedView(t *testing.T) {
	f := newFixture(t, "Hello *world*", func(s *Services) {
		s.Config.Editor.DefaultView = config.ViewFormatted
	})
	require.Equal(t, editsync.FormattedEditable, f.m.Controller().State())
	require.Contains(t, f.view(), "Formatted · note.md")
}

func TestNew_MissingFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	m, err := New(context.Background(), Services{
		Config: testConfig(),
		Store:  store.New(filepath.Join(dir, "new.md")),
	})
	require.NoError(t, err)
	t.Cleanup(m.Close)
	require.Empty(t, m.Controller().Canonical())
}

func TestStatusBarCanBeHidden(t *testing.T) {
	f := newFixture(t, "hello")
	require.Contains(t, f.view(), "f1 help")
	require.Len(t, strings.Split(f.m.View(), "\n"), 20)

	hidden := newFixture(t, "hello", func(s *Services) { s.Config.UI.ShowStatusBar = false })
	require.NotContains(t, hidden.view(), "f1 help")
	require.Len(t, strings.Split(hidden.m.View(), "\n"), 20)
}

func TestTypingAndSave(t *testing.T) {
	f := newFixture(t, "")
	f.typeText("hi there")
	require.Equal(t, "hi there", f.m.Controller().Canonical())
	require.True(t, f.m.Controller().Dirty())
	require.Contains(t, f.view(), "modified")

	f.settle(keyMsg(tea.KeyCtrlS))
	require.False(t, f.m.Controller().Dirty())
	data, err := os.ReadFile(f.path)
	require.NoError(t, err)
	require.Equal(t, "hi there", string(data))
}

func TestToggleView_AndReadOnlyOverlay(t *testing.T) {
	f := newFixture(t, "Hello *world*")

	f.settle(keyMsg(tea.KeyCtrlT))
	require.Equal(t, editsync.FormattedEditable, f.m.Controller().State())
	out := f.view()
	require.Contains(t, out, "Hello world")
	require.NotContains(t, out, "*world*")

	f.settle(keyMsg(tea.KeyCtrlB))
	require.Equal(t, editsync.FormattedReadOnly, f.m.Controller().State())
	require.Contains(t, f.view(), "READING")

	f.settle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	require.Equal(t, "Hello *world*", f.m.Controller().Canonical(), "overlay view is read-only")
	require.Contains(t, f.view(), "Read-only")

	f.settle(keyMsg(tea.KeyCtrlB))
	f.settle(keyMsg(tea.KeyCtrlT))
	require.Equal(t, editsync.SourceActive, f.m.Controller().State())
	require.Equal(t, "Hello *world*", f.m.Controller().Canonical())
}

func TestFormattedEditing_SerializesBack(t *testing.T) {
	f := newFixture(t, "**bold**")
	f.settle(keyMsg(tea.KeyCtrlT))
	f.settle(keyMsg(tea.KeyEnd))
	f.typeText("er")
	require.Equal(t, "**bolder**", f.m.Controller().Canonical())
}

func TestCycleStrength(t *testing.T) {
	f := newFixture(t, "reading")
	require.Equal(t, "medium", f.m.live.BionicStrength().String())
	f.settle(keyMsg(tea.KeyCtrlG))
	require.Equal(t, "strong", f.m.live.BionicStrength().String())
	require.Contains(t, f.view(), "Overlay strength: strong")
}

func TestQuit_ConfirmsUnsavedChanges(t *testing.T) {
	f := newFixture(t, "")
	f.typeText("x")

	cmd := f.send(keyMsg(tea.KeyCtrlQ))
	require.NotContains(t, run(cmd), tea.QuitMsg{})
	require.Contains(t, f.view(), "Unsaved changes")

	cmd = f.send(keyMsg(tea.KeyCtrlQ))
	require.Contains(t, run(cmd), tea.QuitMsg{})
}

func TestQuit_CleanBufferQuitsAtOnce(t *testing.T) {
	f := newFixture(t, "done")
	require.Contains(t, run(f.send(keyMsg(tea.KeyCtrlQ))), tea.QuitMsg{})
}

func TestOpenLink_FromSource(t *testing.T) {
	f := newFixture(t, "see example.com now")
	f.m.source.SetCaret(6)
	f.settle(keyMsg(tea.KeyCtrlO))
	require.Equal(t, []string{"https://example.com"}, f.opener.opened)

	f.m.source.SetCaret(0)
	f.settle(keyMsg(tea.KeyCtrlO))
	require.Len(t, f.opener.opened, 1)
	require.Contains(t, f.view(), "No link under the cursor")
}

func TestOpenLink_FromFormatted(t *testing.T) {
	f := newFixture(t, "[the docs](docs.example.com)")
	f.settle(keyMsg(tea.KeyCtrlT))
	f.settle(keyMsg(tea.KeyRight))
	f.settle(keyMsg(tea.KeyCtrlO))
	require.Equal(t, []string{"https://docs.example.com"}, f.opener.opened)
}

func TestAutoLinkToggle_PersistsSetting(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	f := newFixture(t, "see example.com", func(s *Services) { s.ConfigPath = cfgPath })
	require.Len(t, f.m.Controller().Links(), 1)

	f.settle(keyMsg(tea.KeyCtrlL))
	require.Empty(t, f.m.Controller().Links())

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "auto_link: false")
}

func TestSpelling_SuggestAndReplace(t *testing.T) {
	f := newFixture(t, "helo world")
	require.Equal(t, []spell.Marker{{Start: 0, Length: 4}}, f.m.Controller().Markers())
	f.m.source.SetCaret(2)

	msgs := f.settle(keyMsg(tea.KeyCtrlN))
	require.Len(t, msgs, 1)
	sm, ok := msgs[0].(suggestionsMsg)
	require.True(t, ok)
	require.Contains(t, sm.suggestions, "hello")

	f.settle(sm)
	require.NotNil(t, f.m.suggest)
	require.Contains(t, f.view(), "Spelling: helo")

	digit := rune('1' + slices.Index(sm.suggestions, "hello"))
	chosen := f.settle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{digit}})
	require.Equal(t, []tea.Msg{suggest.ChosenMsg{Marker: spell.Marker{Start: 0, Length: 4}, Word: "helo", Replacement: "hello"}}, chosen)

	f.settle(chosen[0])
	require.Nil(t, f.m.suggest)
	require.Equal(t, "hello world", f.m.Controller().Canonical())
	require.Empty(t, f.m.Controller().Markers())
}

func TestSpelling_StaleChoiceSkipped(t *testing.T) {
	f := newFixture(t, "helo world")
	f.settle(suggest.ChosenMsg{Marker: spell.Marker{Start: 0, Length: 4}, Word: "wxyz", Replacement: "hello"})
	require.Equal(t, "helo world", f.m.Controller().Canonical())
	require.Contains(t, f.view(), "correction skipped")
}

func TestSpelling_AddWord(t *testing.T) {
	f := newFixture(t, "quill world")
	require.Len(t, f.m.Controller().Markers(), 1)
	f.m.source.SetCaret(1)

	f.settle(keyMsg(tea.KeyCtrlD))
	require.True(t, f.custom.Contains("quill"))
	require.Empty(t, f.m.Controller().Markers())
	require.Contains(t, f.view(), `Added "quill"`)
}

func TestExternalChange_ReloadsCleanBuffer(t *testing.T) {
	f := newFixture(t, "one")
	require.NoError(t, os.WriteFile(f.path, []byte("two"), 0o600))

	f.settle(changedMsg{Path: f.path})
	require.Equal(t, "two", f.m.Controller().Canonical())
	require.Contains(t, f.view(), "Reloaded note.md")
}

func TestExternalChange_KeepsDirtyBuffer(t *testing.T) {
	f := newFixture(t, "one")
	f.typeText("!")
	require.NoError(t, os.WriteFile(f.path, []byte("two"), 0o600))

	f.settle(changedMsg{Path: f.path})
	require.Equal(t, "!one", f.m.Controller().Canonical())
	require.True(t, f.m.stale)
	require.Contains(t, f.view(), "changed on disk")

	f.settle(keyMsg(tea.KeyCtrlR))
	require.Equal(t, "two", f.m.Controller().Canonical())
	require.False(t, f.m.stale)
}

func TestHelpOverlay(t *testing.T) {
	f := newFixture(t, "text")
	f.settle(keyMsg(tea.KeyF1))
	require.True(t, f.m.showHelp)
	require.Contains(t, f.view(), "source/formatted")

	f.settle(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	require.Equal(t, "text", f.m.Controller().Canonical(), "keys do not reach the editor under help")

	f.settle(keyMsg(tea.KeyEsc))
	require.False(t, f.m.showHelp)
}

func TestDebugLogOverlay(t *testing.T) {
	f := newFixture(t, "text", func(s *Services) { s.Debug = true })
	f.settle(keyMsg(tea.KeyCtrlX))
	require.True(t, f.m.logView.Visible())
	require.Contains(t, f.view(), "Logs")
	f.settle(keyMsg(tea.KeyEsc))
	require.False(t, f.m.logView.Visible())
}

func TestProgram_TypeAndSave(t *testing.T) {
	f := newFixture(t, "")
	tm := teatest.NewTestModel(t, f.m, teatest.WithInitialTermSize(80, 20))

	tm.Type("hello")
	tm.Send(keyMsg(tea.KeyCtrlS))
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte("Saved note.md"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(keyMsg(tea.KeyCtrlQ))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final := tm.FinalModel(t).(Model)
	require.Equal(t, "hello", final.Controller().Canonical())
	data, err := os.ReadFile(f.path)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}
