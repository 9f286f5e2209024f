// Package app contains the root application model.
package app

import (
	"context"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/dictionary"
	"github.com/zjrosen/quill/internal/editsync"
	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/overlay"
	"github.com/zjrosen/quill/internal/pubsub"
	"github.com/zjrosen/quill/internal/schedule"
	"github.com/zjrosen/quill/internal/settings"
	"github.com/zjrosen/quill/internal/spell"
	"github.com/zjrosen/quill/internal/store"
	"github.com/zjrosen/quill/internal/ui/help"
	"github.com/zjrosen/quill/internal/ui/logview"
	"github.com/zjrosen/quill/internal/ui/richview"
	"github.com/zjrosen/quill/internal/ui/sourceview"
	"github.com/zjrosen/quill/internal/ui/suggest"
	"github.com/zjrosen/quill/internal/ui/toaster"
)

const toastDuration = 3 * time.Second

// Services are the collaborators the editor is built from.
type Services struct {
	Config     config.Config
	ConfigPath string // empty disables settings persistence

	Store   *store.FileStore // nil for an unsaved scratch buffer
	Checker *spell.Checker   // nil disables spell checking
	Custom  *dictionary.CustomDictionary
	Tracer  trace.Tracer
	Opener  Opener

	// Watch starts a file watcher on Store when Config.Watch allows it.
	Watch bool
	Debug bool
}

// Model is the root application state. The controller and both surfaces
// are pointers, so copies of Model share one editing session.
type Model struct {
	svc  Services
	keys keys.KeyMap

	ctrl   *editsync.Controller
	sched  *schedule.TeaScheduler
	live   *settings.Live
	source *sourceview.Model
	rich   *richview.Model

	width  int
	height int

	toaster  toaster.Model
	help     help.Model
	showHelp bool
	suggest  *suggest.Model

	logView     logview.Model
	logListener *log.LogListener

	cancel      context.CancelFunc
	events      *pubsub.ContinuousListener[editsync.Event]
	watcher     *store.Watcher
	changes     <-chan store.Changed
	stale       bool // the file changed on disk while we had unsaved edits
	confirmQuit bool
}

// changedMsg carries a watcher notification into the update loop.
type changedMsg store.Changed

// New builds the editor and loads the document.
func New(ctx context.Context, svc Services) (Model, error) {
	cfg := svc.Config
	if svc.Opener == nil {
		svc.Opener = SystemOpener{}
	}

	live := settings.NewLive(settings.Snapshot{
		BionicEnabled:  cfg.Bionic.Enabled,
		BionicStrength: cfg.Bionic.ParsedStrength(),
		AutoLink:       cfg.Editor.AutoLink,
		SpellCheck:     cfg.Editor.SpellCheck,
	})
	if svc.ConfigPath != "" {
		path := svc.ConfigPath
		live.OnChange(func(s settings.Snapshot) error { return config.SaveSettings(path, s) })
	}

	sched := schedule.NewTeaScheduler()
	source := sourceview.New()
	rich := richview.New("quill")

	ctrlCfg := editsync.Config{
		Source:    source,
		Rich:      rich,
		Settings:  live,
		Scheduler: sched,
		Checker:   svc.Checker,
		Tracer:    svc.Tracer,
		Delays:    delaysFrom(cfg.Editor),
	}
	if svc.Store != nil {
		ctrlCfg.Store = svc.Store
	}
	ctrl := editsync.New(ctrlCfg)

	listenCtx, cancel := context.WithCancel(context.Background())
	m := Model{
		svc:     svc,
		keys:    keys.Editor,
		ctrl:    ctrl,
		sched:   sched,
		live:    live,
		source:  source,
		rich:    rich,
		toaster: toaster.New(),
		help:    help.New(keys.Editor, cfg.UI.MarkdownStyle),
		logView: logview.New(logview.DefaultCapacity),
		cancel:  cancel,
		events:  pubsub.NewContinuousListener(listenCtx, ctrl.Broker()),
	}
	if svc.Debug {
		m.logListener = log.NewListener(listenCtx)
	}

	if svc.Store != nil {
		if err := ctrl.Load(ctx); err != nil {
			cancel()
			ctrl.Close()
			return Model{}, err
		}
		if svc.Watch {
			m.startWatcher()
		}
	}
	if cfg.Editor.DefaultView == config.ViewFormatted {
		ctrl.ShowFormatted()
	}
	m.focusActive()
	return m, nil
}

func delaysFrom(e config.EditorConfig) editsync.Delays {
	d := editsync.DefaultDelays()
	if e.LinkDebounce > 0 {
		d.Link = e.LinkDebounce
	}
	if e.SpellDebounce > 0 {
		d.Spell = e.SpellDebounce
	}
	if e.RedetectDebounce > 0 {
		d.Redetect = e.RedetectDebounce
	}
	return d
}

// startWatcher is best effort: the editor works without reloads.
func (m *Model) startWatcher() {
	wcfg := store.DefaultWatcherConfig()
	if m.svc.Config.Watch.Debounce > 0 {
		wcfg.Debounce = m.svc.Config.Watch.Debounce
	}
	w, err := store.NewWatcher(m.svc.Store, wcfg)
	if err != nil {
		log.Warn(log.CatWatcher, "File watcher unavailable", "error", err)
		return
	}
	ch, err := w.Start()
	if err != nil {
		log.Warn(log.CatWatcher, "File watcher failed to start", "error", err)
		_ = w.Stop()
		return
	}
	m.watcher = w
	m.changes = ch
}

// Controller exposes the sync controller.
func (m Model) Controller() *editsync.Controller {
	return m.ctrl
}

// Close stops background work. Call it after the program exits.
func (m Model) Close() {
	m.cancel()
	if m.watcher != nil {
		_ = m.watcher.Stop()
	}
	m.ctrl.Close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.events.Listen(),
		m.logListener.Listen(),
		m.waitForChange(),
		m.sched.Cmd(),
	)
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return changedMsg(c)
	}
}

func (m *Model) focusActive() {
	if m.ctrl.State().Formatted() {
		m.source.Blur()
		m.rich.Focus()
		return
	}
	m.rich.Blur()
	m.source.Focus()
}

func (m Model) docName() string {
	if m.svc.Store == nil {
		return "scratch"
	}
	return filepath.Base(m.svc.Store.Path())
}

func (m Model) toast(msg string, style toaster.Style) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(msg, style, toastDuration)
	return m, cmd
}

func nextStrength(s overlay.Strength) overlay.Strength {
	switch s {
	case overlay.Light:
		return overlay.Medium
	case overlay.Medium:
		return overlay.Strong
	default:
		return overlay.Light
	}
}
