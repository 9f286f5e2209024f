package dictionary

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zjrosen/quill/internal/log"
)

// Entry is one word of the persisted custom dictionary.
type Entry struct {
	Word    string
	AddedAt time.Time
}

// Repository persists custom dictionary words.
type Repository interface {
	Add(ctx context.Context, word string) error
	// Remove reports whether the word was present.
	Remove(ctx context.Context, word string) (bool, error)
	List(ctx context.Context) ([]Entry, error)
}

// CustomDictionary is a Custom backed by a Repository. Lookups are served
// from memory; changes are written through to the repository.
type CustomDictionary struct {
	mu   sync.RWMutex
	repo Repository
	set  Set
}

var _ Custom = (*CustomDictionary)(nil)

// LoadCustom reads every word from repo.
func LoadCustom(ctx context.Context, repo Repository) (*CustomDictionary, error) {
	entries, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading custom dictionary: %w", err)
	}
	set := make(Set, len(entries))
	for _, e := range entries {
		set.Add(e.Word)
	}
	log.Debug(log.CatDict, "custom dictionary loaded", "words", len(set))
	return &CustomDictionary{repo: repo, set: set}, nil
}

// Contains reports whether word was added by the user.
func (c *CustomDictionary) Contains(word string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.set.Contains(word)
}

// Add stores word.
func (c *CustomDictionary) Add(ctx context.Context, word string) error {
	if normalize(word) == "" {
		return fmt.Errorf("empty word")
	}
	if err := c.repo.Add(ctx, word); err != nil {
		return fmt.Errorf("adding %q: %w", word, err)
	}
	c.mu.Lock()
	c.set.Add(word)
	c.mu.Unlock()
	return nil
}

// Remove deletes word and reports whether it was present.
func (c *CustomDictionary) Remove(ctx context.Context, word string) (bool, error) {
	removed, err := c.repo.Remove(ctx, word)
	if err != nil {
		return false, fmt.Errorf("removing %q: %w", word, err)
	}
	c.mu.Lock()
	c.set.Remove(word)
	c.mu.Unlock()
	return removed, nil
}

// Len returns the number of words.
func (c *CustomDictionary) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.set)
}
