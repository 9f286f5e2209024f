package editsync

// suppressor marks programmatic surface writes so the change notifications
// they cause are not mistaken for user edits.
type suppressor struct {
	depth int
}

// Do runs fn with suppression active. The flag is released on every exit
// path, including a panic in fn.
func (s *suppressor) Do(fn func()) {
	s.depth++
	defer func() { s.depth-- }()
	fn()
}

// Active reports whether a programmatic write is in progress.
func (s *suppressor) Active() bool { return s.depth > 0 }
