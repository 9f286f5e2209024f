package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrSessionID  = "session.id"
	AttrState      = "sync.state"
	AttrTrigger    = "sync.trigger"
	AttrOverlay    = "overlay.enabled"
	AttrStrength   = "overlay.strength"
	AttrAutoLink   = "markup.auto_link"
	AttrTextBytes  = "text.bytes"
	AttrParagraphs = "markup.paragraphs"
	AttrLinkCount  = "links.count"
	AttrMisspelled = "spell.misspelled"
	AttrDocPath    = "document.path"
	AttrErrorMsg   = "error.message"
)

// Span names.
const (
	SpanToggleView  = "sync.toggle_view"
	SpanRebuild     = "sync.rebuild"
	SpanRedetect    = "sync.redetect"
	SpanLinkPass    = "links.detect"
	SpanSpellPass   = "spell.check"
	SpanLoad        = "store.load"
	SpanSave        = "store.save"
	SpanSetOverlay  = "sync.set_overlay"
	SpanSetStrength = "sync.set_strength"
	SpanSetAutoLink = "sync.set_auto_link"
	SpanRichEdited  = "sync.rich_edited"
)

// Start begins a span named name with attrs.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// RecordError marks span failed with err. A nil err marks it OK.
func RecordError(span trace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetAttributes(attribute.String(AttrErrorMsg, err.Error()))
	span.SetStatus(codes.Error, err.Error())
}

// TraceID returns the hex trace id of the span in ctx, or "" when there is
// no valid span.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}
