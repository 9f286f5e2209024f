package editsync

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/quill/internal/links"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/markup"
	"github.com/zjrosen/quill/internal/overlay"
	"github.com/zjrosen/quill/internal/spell"
	"github.com/zjrosen/quill/internal/tracing"
)

// rebuild re-derives the rich surface from canonical text. The overlay is
// applied to a separate View; the document handed to the surface is always
// the plain parse. A rebuild requested while one is running is refused.
func (c *Controller) rebuild(ctx context.Context, trigger string) bool {
	if c.rebuilding {
		log.Warn(log.CatSync, "Refusing nested rebuild", "trigger", trigger, "session", c.session)
		return false
	}
	c.rebuilding = true
	defer func() { c.rebuilding = false }()

	autoLink := c.settings.AutoLinkEnabled()
	readOnly := c.state == FormattedReadOnly
	strength := c.settings.BionicStrength()

	_, span := c.span(ctx, tracing.SpanRebuild,
		attribute.String(tracing.AttrTrigger, trigger),
		attribute.Bool(tracing.AttrOverlay, readOnly),
		attribute.Bool(tracing.AttrAutoLink, autoLink),
		attribute.Int(tracing.AttrTextBytes, len(c.canonical)),
	)
	defer span.End()

	doc := markup.Parse(c.canonical, autoLink)
	_, m := markup.SerializeMapped(doc)

	var view overlay.View
	if readOnly {
		view = overlay.Apply(doc, strength)
		span.SetAttributes(attribute.String(tracing.AttrStrength, strength.String()))
	} else {
		view = overlay.Plain(doc)
	}

	c.sourceMap = m
	c.guard.Do(func() { c.rich.SetView(doc, view, readOnly) })
	c.links = links.Detect(c.canonical, autoLink)

	span.SetAttributes(
		attribute.Int(tracing.AttrParagraphs, len(doc.Paragraphs)),
		attribute.Int(tracing.AttrLinkCount, len(c.links)),
	)
	log.Debug(log.CatSync, "Rebuilt formatted surface",
		"trigger", trigger, "paragraphs", len(doc.Paragraphs), "overlay", readOnly, "session", c.session)

	c.publish(EventRebuilt, Event{State: c.state, Dirty: c.dirty})
	c.publish(EventLinksDetected, Event{State: c.state, Links: c.links})
	return true
}

// redetect reparses canonical text under the editable rich surface and puts
// the selection back where it was in canonical coordinates.
func (c *Controller) redetect(ctx context.Context) {
	if c.state != FormattedEditable {
		return
	}
	ctx, span := c.span(ctx, tracing.SpanRedetect)
	defer span.End()

	anchor, caret := c.captureRich()
	if c.rebuild(ctx, "redetect") {
		c.setRichCaret(anchor, caret)
	}
}

// captureRich returns the rich selection as canonical byte offsets.
func (c *Controller) captureRich() (anchor, caret int) {
	_, m := markup.SerializeMapped(c.rich.Document())
	a, k := c.rich.Selection()
	return m.Canonical(a), m.Canonical(k)
}

// setRichCaret places the rich selection at canonical offsets. Offsets
// inside markup syntax clamp to the nearest content boundary.
func (c *Controller) setRichCaret(anchor, caret int) {
	a := c.sourceMap.Position(anchor)
	k := c.sourceMap.Position(caret)
	c.guard.Do(func() { c.rich.SetSelection(a, k) })
}

func (c *Controller) spellActive() bool {
	return c.settings.SpellCheckEnabled() && c.checker.Enabled()
}

func (c *Controller) runSourceLinks(ctx context.Context) {
	autoLink := c.settings.AutoLinkEnabled()
	_, span := c.span(ctx, tracing.SpanLinkPass, attribute.Bool(tracing.AttrAutoLink, autoLink))
	defer span.End()

	ls := links.Detect(c.canonical, autoLink)
	c.links = ls
	c.guard.Do(func() { c.source.SetLinks(ls) })
	span.SetAttributes(attribute.Int(tracing.AttrLinkCount, len(ls)))
	c.publish(EventLinksDetected, Event{State: c.state, Links: ls})
}

func (c *Controller) runSourceSpell(ctx context.Context) {
	ms := c.spellPass(ctx, c.canonical)
	c.guard.Do(func() { c.source.SetMarkers(ms) })
}

func (c *Controller) runRichSpell(ctx context.Context) {
	ms := c.spellPass(ctx, c.rich.Document().PlainText())
	c.guard.Do(func() { c.rich.SetMarkers(ms) })
}

func (c *Controller) spellPass(ctx context.Context, text string) []spell.Marker {
	_, span := c.span(ctx, tracing.SpanSpellPass)
	defer span.End()

	var ms []spell.Marker
	if c.spellActive() {
		ms = c.checker.Markers(text)
	}
	c.markers = ms
	span.SetAttributes(attribute.Int(tracing.AttrMisspelled, len(ms)))
	c.publish(EventSpellChecked, Event{State: c.state, Markers: ms})
	return ms
}
