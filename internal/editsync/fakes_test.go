package editsync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/dictionary"
	"github.com/zjrosen/quill/internal/links"
	"github.com/zjrosen/quill/internal/markup"
	"github.com/zjrosen/quill/internal/overlay"
	"github.com/zjrosen/quill/internal/pubsub"
	"github.com/zjrosen/quill/internal/schedule"
	"github.com/zjrosen/quill/internal/settings"
	"github.com/zjrosen/quill/internal/spell"
)

type fakeSource struct {
	text      string
	caret     int
	links     []links.Link
	markers   []spell.Marker
	sets      int
	linkSets  int
	spellSets int
	onSetText func()
}

func (s *fakeSource) Text() string { return s.text }
func (s *fakeSource) SetText(text string) {
	s.text = text
	s.sets++
	if s.onSetText != nil {
		s.onSetText()
	}
}
func (s *fakeSource) Caret() int          { return s.caret }
func (s *fakeSource) SetCaret(offset int) { s.caret = offset }
func (s *fakeSource) SetLinks(ls []links.Link) {
	s.links = ls
	s.linkSets++
}
func (s *fakeSource) SetMarkers(ms []spell.Marker) {
	s.markers = ms
	s.spellSets++
}

// edit simulates the user replacing the whole text.
func (s *fakeSource) edit(text string) {
	s.text = text
	s.caret = len(text)
}

type fakeRich struct {
	doc       markup.Document
	view      overlay.View
	readOnly  bool
	anchor    markup.Position
	caret     markup.Position
	markers   []spell.Marker
	setViews  int
	onSetView func()
}

func (r *fakeRich) Document() markup.Document { return r.doc }
func (r *fakeRich) SetView(doc markup.Document, view overlay.View, readOnly bool) {
	r.doc, r.view, r.readOnly = doc, view, readOnly
	r.setViews++
	if r.onSetView != nil {
		r.onSetView()
	}
}
func (r *fakeRich) Selection() (markup.Position, markup.Position) { return r.anchor, r.caret }
func (r *fakeRich) SetSelection(anchor, caret markup.Position) {
	r.anchor, r.caret = anchor, caret
}
func (r *fakeRich) SetMarkers(ms []spell.Marker) { r.markers = ms }

// typeText simulates typing at the caret.
func (r *fakeRich) typeText(s string) {
	r.doc, r.caret = markup.InsertText(r.doc, r.caret, s)
	r.anchor = r.caret
}

type memStore struct {
	text    string
	loadErr error
	saves   int
}

func (m *memStore) Load(context.Context) (string, error) { return m.text, m.loadErr }
func (m *memStore) Save(_ context.Context, text string) error {
	m.text = text
	m.saves++
	return nil
}

type harness struct {
	c     *Controller
	src   *fakeSource
	rich  *fakeRich
	sched *schedule.ManualScheduler
	set   *settings.Live
	store *memStore
}

func defaultSnapshot() settings.Snapshot {
	return settings.Snapshot{AutoLink: true, SpellCheck: true, BionicStrength: overlay.Medium}
}

func testChecker() *spell.Checker {
	wl := dictionary.NewWordList([]string{"hello", "world", "see", "the", "go", "to", "a", "c", "bold"})
	return spell.NewChecker(wl, nil, spell.WithoutCache())
}

func newHarness(t *testing.T, snap settings.Snapshot, mutate ...func(*Config)) *harness {
	t.Helper()
	h := &harness{
		src:   &fakeSource{},
		rich:  &fakeRich{},
		sched: schedule.NewManualScheduler(),
		set:   settings.NewLive(snap),
		store: &memStore{},
	}
	cfg := Config{
		Source:    h.src,
		Rich:      h.rich,
		Settings:  h.set,
		Scheduler: h.sched,
		Checker:   testChecker(),
		Store:     h.store,
		Delays:    DefaultDelays(),
	}
	for _, m := range mutate {
		m(&cfg)
	}
	h.c = New(cfg)
	t.Cleanup(h.c.Close)
	return h
}

// subscribe collects events published from now on.
func subscribe(t *testing.T, c *Controller) func() []pubsub.Event[Event] {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch := c.Broker().Subscribe(ctx)
	return func() []pubsub.Event[Event] {
		var out []pubsub.Event[Event]
		for {
			select {
			case e, ok := <-ch:
				if !ok {
					return out
				}
				out = append(out, e)
			default:
				return out
			}
		}
	}
}

func eventsOf(evs []pubsub.Event[Event], typ pubsub.EventType) []Event {
	var out []Event
	for _, e := range evs {
		if e.Type == typ {
			out = append(out, e.Payload)
		}
	}
	return out
}

func emphasized(v overlay.View) []string {
	var out []string
	for _, l := range v.Lines {
		for _, f := range l.Fragments {
			if f.Emphasis {
				out = append(out, f.Text)
			}
		}
	}
	return out
}

func requireNoOverlayInDocument(t require.TestingT, h *harness) {
	require.Equal(t, h.c.Canonical(), markup.Serialize(h.rich.doc), "rich document must serialize to canonical text")
}
