// Package settings exposes the user-facing editor toggles. Passes read
// settings fresh on every run so a change takes effect on the next tick.
package settings

import (
	"sync"

	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/overlay"
)

// Settings is the read side used by the sync controller.
type Settings interface {
	BionicEnabled() bool
	BionicStrength() overlay.Strength
	AutoLinkEnabled() bool
	SpellCheckEnabled() bool
}

// Snapshot is a copy of every setting at one moment.
type Snapshot struct {
	BionicEnabled  bool
	BionicStrength overlay.Strength
	AutoLink       bool
	SpellCheck     bool
}

// PersistFunc stores a snapshot, typically in the config file.
type PersistFunc func(Snapshot) error

// Live is an in-memory Settings with setters. Every setter calls the
// persist hook, if one is installed. A persist failure is logged and does
// not roll back the change.
type Live struct {
	mu      sync.RWMutex
	s       Snapshot
	persist PersistFunc
}

var _ Settings = (*Live)(nil)

// NewLive returns settings initialized from s.
func NewLive(s Snapshot) *Live {
	if !s.BionicStrength.Valid() {
		s.BionicStrength = overlay.Medium
	}
	return &Live{s: s}
}

// OnChange installs the persistence hook.
func (l *Live) OnChange(fn PersistFunc) {
	l.mu.Lock()
	l.persist = fn
	l.mu.Unlock()
}

func (l *Live) BionicEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.s.BionicEnabled
}

func (l *Live) BionicStrength() overlay.Strength {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.s.BionicStrength
}

func (l *Live) AutoLinkEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.s.AutoLink
}

func (l *Live) SpellCheckEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.s.SpellCheck
}

// Snapshot returns a copy of the current values.
func (l *Live) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.s
}

func (l *Live) SetBionicEnabled(v bool) { l.update(func(s *Snapshot) { s.BionicEnabled = v }) }

// SetBionicStrength ignores invalid strengths.
func (l *Live) SetBionicStrength(v overlay.Strength) {
	if !v.Valid() {
		return
	}
	l.update(func(s *Snapshot) { s.BionicStrength = v })
}

func (l *Live) SetAutoLink(v bool) { l.update(func(s *Snapshot) { s.AutoLink = v }) }

func (l *Live) SetSpellCheck(v bool) { l.update(func(s *Snapshot) { s.SpellCheck = v }) }

func (l *Live) update(fn func(*Snapshot)) {
	l.mu.Lock()
	before := l.s
	fn(&l.s)
	after, persist := l.s, l.persist
	l.mu.Unlock()

	if after == before || persist == nil {
		return
	}
	if err := persist(after); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to persist settings", err)
	}
}
