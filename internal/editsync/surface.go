package editsync

import (
	"context"

	"github.com/zjrosen/quill/internal/links"
	"github.com/zjrosen/quill/internal/markup"
	"github.com/zjrosen/quill/internal/overlay"
	"github.com/zjrosen/quill/internal/settings"
	"github.com/zjrosen/quill/internal/spell"
)

// SourceSurface is the plain-text editor. Its text is canonical text.
// Offsets are byte offsets into that text.
type SourceSurface interface {
	Text() string
	// SetText replaces the content. Implementations may report the change
	// back through Controller.SourceEdited; the controller ignores it.
	SetText(text string)
	Caret() int
	SetCaret(offset int)
	SetLinks(ls []links.Link)
	SetMarkers(ms []spell.Marker)
}

// RichSurface is the formatted editor. It owns the document it was given
// until the next SetView and edits it in place when editable.
type RichSurface interface {
	Document() markup.Document
	// SetView replaces the document and its rendering. readOnly is set
	// whenever the view carries the reading overlay.
	SetView(doc markup.Document, view overlay.View, readOnly bool)
	Selection() (anchor, caret markup.Position)
	SetSelection(anchor, caret markup.Position)
	// SetMarkers underlines misspellings. Offsets index the document's
	// PlainText.
	SetMarkers(ms []spell.Marker)
}

// Store loads and saves canonical text.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, text string) error
}

// Settings is the live settings the controller reads and changes.
type Settings interface {
	settings.Settings
	SetBionicEnabled(bool)
	SetBionicStrength(overlay.Strength)
	SetAutoLink(bool)
	SetSpellCheck(bool)
}

var _ Settings = (*settings.Live)(nil)
