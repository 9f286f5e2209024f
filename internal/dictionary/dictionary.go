// Package dictionary provides the word lists consulted by the spell checker:
// a system word list engine with fuzzy suggestions and the user's custom
// dictionary.
package dictionary

import (
	"errors"
	"strings"
)

// ErrUnavailable is returned when no word list could be loaded. The spell
// checker treats it as "disabled for this session".
var ErrUnavailable = errors.New("dictionary unavailable")

// Engine checks words and proposes corrections.
type Engine interface {
	Check(word string) bool
	Suggest(word string, maxCount int) []string
}

// Custom is the user's own dictionary. Words in it are always correct.
type Custom interface {
	Contains(word string) bool
}

// Set is an in-memory Custom dictionary. Lookups ignore case.
type Set map[string]struct{}

// NewSet builds a Set from words.
func NewSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts word.
func (s Set) Add(word string) {
	if w := normalize(word); w != "" {
		s[w] = struct{}{}
	}
}

// Remove deletes word.
func (s Set) Remove(word string) {
	delete(s, normalize(word))
}

// Contains reports whether word is in the set.
func (s Set) Contains(word string) bool {
	_, ok := s[normalize(word)]
	return ok
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
