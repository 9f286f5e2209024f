// Package editsync keeps the canonical markup text and its two editing
// surfaces consistent.
//
// The controller decides which surface is authoritative. In SourceActive
// the plain-text surface is edited and canonical text follows it verbatim.
// In FormattedEditable the rich surface is edited and every change is
// serialized back into canonical text. In FormattedReadOnly the rich
// surface shows the reading overlay and cannot be edited. Every rebuild of
// the rich surface starts from canonical text, never from what the rich
// surface currently displays.
package editsync

// State is the controller's mode.
type State int

const (
	SourceActive State = iota
	FormattedEditable
	FormattedReadOnly
)

func (s State) String() string {
	switch s {
	case SourceActive:
		return "source"
	case FormattedEditable:
		return "formatted_editable"
	case FormattedReadOnly:
		return "formatted_read_only"
	default:
		return "unknown"
	}
}

// Formatted reports whether the rich surface is shown.
func (s State) Formatted() bool {
	return s == FormattedEditable || s == FormattedReadOnly
}

// formattedState picks the formatted sub-state for the overlay setting.
func formattedState(overlayEnabled bool) State {
	if overlayEnabled {
		return FormattedReadOnly
	}
	return FormattedEditable
}
