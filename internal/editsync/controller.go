package editsync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/quill/internal/links"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/markup"
	"github.com/zjrosen/quill/internal/overlay"
	"github.com/zjrosen/quill/internal/pubsub"
	"github.com/zjrosen/quill/internal/schedule"
	"github.com/zjrosen/quill/internal/spell"
	"github.com/zjrosen/quill/internal/store"
	"github.com/zjrosen/quill/internal/tracing"
)

// Delays are the quiet periods before each deferred pass.
type Delays struct {
	Link     time.Duration
	Spell    time.Duration
	Redetect time.Duration
}

// DefaultDelays returns the standard debounce windows.
func DefaultDelays() Delays {
	return Delays{
		Link:     300 * time.Millisecond,
		Spell:    500 * time.Millisecond,
		Redetect: 400 * time.Millisecond,
	}
}

// Config wires a controller to its collaborators. Source, Rich, Settings
// and Scheduler are required.
type Config struct {
	Source    SourceSurface
	Rich      RichSurface
	Settings  Settings
	Scheduler schedule.Scheduler
	Checker   *spell.Checker // nil disables spell checking
	Store     Store          // nil makes Load and Save fail
	Tracer    trace.Tracer   // nil uses a no-op tracer
	Delays    Delays
	Broker    *pubsub.Broker[Event] // nil creates one
}

// Controller is the sync state machine. It is not safe for concurrent use:
// all methods, including timer callbacks, run on the owner goroutine.
type Controller struct {
	state     State
	canonical string
	dirty     bool

	source   SourceSurface
	rich     RichSurface
	settings Settings
	checker  *spell.Checker
	store    Store
	tracer   trace.Tracer
	broker   *pubsub.Broker[Event]
	session  string

	guard      suppressor
	rebuilding bool
	sourceMap  *markup.SourceMap // maps the rich surface's document to canonical text

	sourceLinks  *schedule.Debouncer
	sourceSpell  *schedule.Debouncer
	richRedetect *schedule.Debouncer
	richSpell    *schedule.Debouncer
	links        []links.Link
	markers      []spell.Marker
}

// New creates a controller in SourceActive with empty canonical text.
func New(cfg Config) *Controller {
	if cfg.Tracer == nil {
		cfg.Tracer = tracing.Noop().Tracer()
	}
	if cfg.Broker == nil {
		cfg.Broker = pubsub.NewBroker[Event]()
	}
	d := cfg.Delays
	c := &Controller{
		state:        SourceActive,
		source:       cfg.Source,
		rich:         cfg.Rich,
		settings:     cfg.Settings,
		checker:      cfg.Checker,
		store:        cfg.Store,
		tracer:       cfg.Tracer,
		broker:       cfg.Broker,
		session:      uuid.NewString(),
		sourceLinks:  schedule.NewDebouncer(cfg.Scheduler, d.Link),
		sourceSpell:  schedule.NewDebouncer(cfg.Scheduler, d.Spell),
		richRedetect: schedule.NewDebouncer(cfg.Scheduler, d.Redetect),
		richSpell:    schedule.NewDebouncer(cfg.Scheduler, d.Spell),
	}
	log.Debug(log.CatSync, "Controller created", "session", c.session)
	return c
}

// State returns the current mode.
func (c *Controller) State() State { return c.state }

// Canonical returns the canonical text.
func (c *Controller) Canonical() string { return c.canonical }

// Dirty reports whether canonical text changed since the last load or save.
func (c *Controller) Dirty() bool { return c.dirty }

// Links returns the links found by the last detection pass.
func (c *Controller) Links() []links.Link { return c.links }

// Markers returns the misspellings found by the last spell pass, in the
// coordinates of the surface that is shown.
func (c *Controller) Markers() []spell.Marker { return c.markers }

// SessionID identifies this editing session in logs and traces.
func (c *Controller) SessionID() string { return c.session }

// Broker returns the event broker.
func (c *Controller) Broker() *pubsub.Broker[Event] { return c.broker }

// Pending reports whether any deferred pass is armed.
func (c *Controller) Pending() bool {
	return c.sourceLinks.Pending() || c.sourceSpell.Pending() ||
		c.richRedetect.Pending() || c.richSpell.Pending()
}

// Close cancels every deferred pass and closes the broker.
func (c *Controller) Close() {
	c.cancelPending()
	c.broker.Close()
}

// ToggleView switches between the source and formatted surfaces.
func (c *Controller) ToggleView() {
	if c.state.Formatted() {
		c.ShowSource()
		return
	}
	c.ShowFormatted()
}

// ShowFormatted enters the formatted surface, rebuilding it from canonical
// text. Entering while already formatted only re-syncs the sub-state.
func (c *Controller) ShowFormatted() {
	ctx, span := c.span(context.Background(), tracing.SpanToggleView)
	defer span.End()

	c.cancelPending()
	anchor, caret := c.source.Caret(), c.source.Caret()
	if c.state.Formatted() {
		anchor, caret = c.captureRich()
	}
	prev := c.state
	c.state = formattedState(c.settings.BionicEnabled())
	c.rebuild(ctx, "show_formatted")
	c.setRichCaret(anchor, caret)
	c.runRichSpell(ctx)
	c.stateChanged(prev)
}

// ShowSource returns to the plain-text surface. The source surface already
// holds canonical text; it is rewritten only if it drifted.
func (c *Controller) ShowSource() {
	ctx, span := c.span(context.Background(), tracing.SpanToggleView)
	defer span.End()

	c.cancelPending()
	prev := c.state
	caret := c.source.Caret()
	if prev.Formatted() {
		_, caret = c.captureRich()
	}
	c.state = SourceActive
	c.guard.Do(func() {
		if c.source.Text() != c.canonical {
			log.Warn(log.CatSync, "Source surface drifted from canonical text; rewriting", "session", c.session)
			c.source.SetText(c.canonical)
		}
		c.source.SetCaret(caret)
	})
	c.runSourceLinks(ctx)
	c.runSourceSpell(ctx)
	c.stateChanged(prev)
}

// SetOverlayEnabled turns the reading overlay on or off. While formatted,
// enabling forces the read-only sub-state and disabling allows editing.
func (c *Controller) SetOverlayEnabled(on bool) {
	ctx, span := c.span(context.Background(), tracing.SpanSetOverlay, attribute.Bool(tracing.AttrOverlay, on))
	defer span.End()

	c.cancelPending()
	c.settings.SetBionicEnabled(on)
	if !c.state.Formatted() {
		return
	}
	prev := c.state
	anchor, caret := c.captureRich()
	c.state = formattedState(on)
	c.rebuild(ctx, "overlay_toggled")
	c.setRichCaret(anchor, caret)
	c.runRichSpell(ctx)
	c.stateChanged(prev)
}

// SetOverlayStrength changes the overlay strength, rebuilding the formatted
// surface when it is shown.
func (c *Controller) SetOverlayStrength(s overlay.Strength) {
	ctx, span := c.span(context.Background(), tracing.SpanSetStrength, attribute.String(tracing.AttrStrength, s.String()))
	defer span.End()

	c.cancelPending()
	c.settings.SetBionicStrength(s)
	if !c.state.Formatted() {
		return
	}
	anchor, caret := c.captureRich()
	c.rebuild(ctx, "strength_changed")
	c.setRichCaret(anchor, caret)
	c.runRichSpell(ctx)
}

// SetAutoLink toggles bare URL and email detection.
func (c *Controller) SetAutoLink(on bool) {
	ctx, span := c.span(context.Background(), tracing.SpanSetAutoLink, attribute.Bool(tracing.AttrAutoLink, on))
	defer span.End()

	c.cancelPending()
	c.settings.SetAutoLink(on)
	if c.state.Formatted() {
		anchor, caret := c.captureRich()
		c.rebuild(ctx, "auto_link_changed")
		c.setRichCaret(anchor, caret)
		c.runRichSpell(ctx)
		return
	}
	c.runSourceLinks(ctx)
	c.runSourceSpell(ctx)
}

// SetSpellCheck toggles spell checking and re-runs the pass for the shown
// surface, which clears markers when turned off.
func (c *Controller) SetSpellCheck(on bool) {
	c.settings.SetSpellCheck(on)
	c.Recheck()
}

// Recheck re-runs the spell pass for the shown surface now, e.g. after the
// custom dictionary changed.
func (c *Controller) Recheck() {
	c.sourceSpell.Cancel()
	c.richSpell.Cancel()
	ctx := context.Background()
	if c.state.Formatted() {
		c.runRichSpell(ctx)
		return
	}
	c.runSourceSpell(ctx)
}

// SourceEdited propagates a user edit on the source surface. It is ignored
// while the controller itself is writing a surface, and outside
// SourceActive.
func (c *Controller) SourceEdited() {
	if c.guard.Active() {
		return
	}
	if c.state != SourceActive {
		log.Debug(log.CatSync, "Ignoring source edit outside source mode", "state", c.state)
		return
	}
	text := c.source.Text()
	if text == c.canonical {
		return
	}
	c.setCanonical(text)
	c.sourceLinks.Trigger(func() {
		if c.state == SourceActive {
			c.runSourceLinks(context.Background())
		}
	})
	c.sourceSpell.Trigger(func() {
		if c.state == SourceActive {
			c.runSourceSpell(context.Background())
		}
	})
}

// RichEdited propagates a user edit on the rich surface: the surface's
// document is serialized into canonical text immediately, the source
// surface is updated, and re-detection is scheduled.
func (c *Controller) RichEdited() {
	if c.guard.Active() {
		return
	}
	switch c.state {
	case FormattedReadOnly:
		log.Warn(log.CatSync, "Ignoring edit on read-only formatted surface", "session", c.session)
		return
	case SourceActive:
		log.Debug(log.CatSync, "Ignoring rich edit in source mode")
		return
	}

	_, span := c.span(context.Background(), tracing.SpanRichEdited)
	defer span.End()

	text, m := markup.SerializeMapped(c.rich.Document())
	c.sourceMap = m
	if text == c.canonical {
		return
	}
	c.setCanonical(text)
	c.guard.Do(func() { c.source.SetText(text) })
	c.richRedetect.Trigger(func() { c.redetect(context.Background()) })
	c.richSpell.Trigger(func() {
		if c.state.Formatted() {
			c.runRichSpell(context.Background())
		}
	})
}

// Replace installs text as freshly loaded content: pending passes are
// cancelled, both surfaces are rewritten, and the dirty flag is cleared.
func (c *Controller) Replace(text string) {
	ctx := context.Background()
	c.cancelPending()
	c.canonical = text
	c.dirty = false
	c.guard.Do(func() {
		c.source.SetText(text)
		c.source.SetCaret(0)
	})
	if c.state.Formatted() {
		c.state = formattedState(c.settings.BionicEnabled())
		c.rebuild(ctx, "load")
		c.setRichCaret(0, 0)
		c.runRichSpell(ctx)
	} else {
		c.runSourceLinks(ctx)
		c.runSourceSpell(ctx)
	}
	c.publish(EventCanonicalChanged, Event{State: c.state})
}

// Load reads canonical text from the store. A missing document loads as
// empty text.
func (c *Controller) Load(ctx context.Context) error {
	ctx, span := c.span(ctx, tracing.SpanLoad, attribute.String(tracing.AttrDocPath, c.storePath()))
	defer span.End()

	if c.store == nil {
		err := errors.New("no document store")
		tracing.RecordError(span, err)
		return err
	}
	text, err := c.store.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		log.Info(log.CatStore, "Document does not exist yet; starting empty", "session", c.session)
		text = ""
	case err != nil:
		tracing.RecordError(span, err)
		return fmt.Errorf("loading document: %w", err)
	}
	span.SetAttributes(attribute.Int(tracing.AttrTextBytes, len(text)))
	c.Replace(text)
	c.publish(EventLoaded, Event{State: c.state, Path: c.storePath()})
	tracing.RecordError(span, nil)
	return nil
}

// Save writes canonical text to the store. It never reads either surface.
func (c *Controller) Save(ctx context.Context) error {
	ctx, span := c.span(ctx, tracing.SpanSave,
		attribute.String(tracing.AttrDocPath, c.storePath()),
		attribute.Int(tracing.AttrTextBytes, len(c.canonical)),
	)
	defer span.End()

	if c.store == nil {
		err := errors.New("no document store")
		tracing.RecordError(span, err)
		return err
	}
	if err := c.store.Save(ctx, c.canonical); err != nil {
		tracing.RecordError(span, err)
		log.ErrorErr(log.CatStore, "Save failed", err, "session", c.session)
		return fmt.Errorf("saving document: %w", err)
	}
	c.dirty = false
	c.publish(EventSaved, Event{State: c.state, Path: c.storePath()})
	tracing.RecordError(span, nil)
	return nil
}

func (c *Controller) setCanonical(text string) {
	c.canonical = text
	c.dirty = true
	c.publish(EventCanonicalChanged, Event{State: c.state, Dirty: true})
}

func (c *Controller) stateChanged(prev State) {
	log.Info(log.CatSync, "State changed", "from", prev, "to", c.state, "session", c.session)
	c.publish(EventStateChanged, Event{State: c.state, Previous: prev, Dirty: c.dirty})
}

func (c *Controller) cancelPending() {
	c.sourceLinks.Cancel()
	c.sourceSpell.Cancel()
	c.richRedetect.Cancel()
	c.richSpell.Cancel()
}

func (c *Controller) publish(t pubsub.EventType, e Event) {
	c.broker.Publish(t, e)
}

func (c *Controller) storePath() string {
	if p, ok := c.store.(interface{ Path() string }); ok {
		return p.Path()
	}
	return ""
}

func (c *Controller) span(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String(tracing.AttrSessionID, c.session),
		attribute.String(tracing.AttrState, c.state.String()),
	)
	return tracing.Start(ctx, c.tracer, name, attrs...)
}
