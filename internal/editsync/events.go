package editsync

import (
	"github.com/zjrosen/quill/internal/links"
	"github.com/zjrosen/quill/internal/pubsub"
	"github.com/zjrosen/quill/internal/spell"
)

// Event types published on the controller's broker.
const (
	EventStateChanged     pubsub.EventType = "state_changed"
	EventCanonicalChanged pubsub.EventType = "canonical_changed"
	EventRebuilt          pubsub.EventType = "rebuilt"
	EventLinksDetected    pubsub.EventType = "links_detected"
	EventSpellChecked     pubsub.EventType = "spell_checked"
	EventLoaded           pubsub.EventType = "loaded"
	EventSaved            pubsub.EventType = "saved"
)

// Event is the payload of every controller event. Only the fields relevant
// to the event type are set.
type Event struct {
	State    State
	Previous State
	Dirty    bool
	Links    []links.Link
	Markers  []spell.Marker
	Path     string
}
