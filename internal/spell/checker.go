package spell

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zjrosen/quill/internal/cachemanager"
	"github.com/zjrosen/quill/internal/dictionary"
	"github.com/zjrosen/quill/internal/log"
)

const suggestionTTL = 30 * time.Minute

type suggestRequest struct {
	word     string
	maxCount int
}

// Checker classifies tokens against a dictionary engine. A Checker built
// without an engine is disabled: Check and Markers return nil and the rest
// of the editor keeps working.
type Checker struct {
	engine      dictionary.Engine
	custom      dictionary.Custom
	suggestions *cachemanager.ReadThroughCache[string, []string, suggestRequest]
}

// Option configures a Checker.
type Option func(*options)

type options struct {
	cache     cachemanager.CacheManager[string, []string]
	skipCache bool
}

// WithCache replaces the default in-memory suggestion cache.
func WithCache(c cachemanager.CacheManager[string, []string]) Option {
	return func(o *options) { o.cache = c }
}

// WithoutCache disables suggestion caching.
func WithoutCache() Option {
	return func(o *options) { o.skipCache = true }
}

// NewChecker returns a checker using engine and the user's custom words.
// engine may be nil, which disables checking; custom may be nil.
func NewChecker(engine dictionary.Engine, custom dictionary.Custom, opts ...Option) *Checker {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cache == nil {
		o.cache = cachemanager.NewInMemoryCacheManager[string, []string](
			"spell-suggestions", suggestionTTL, cachemanager.DefaultCleanupInterval)
	}

	c := &Checker{engine: engine, custom: custom}
	c.suggestions = cachemanager.NewReadThroughCache(
		o.cache,
		func(_ context.Context, req suggestRequest) ([]string, error) {
			if c.engine == nil {
				return nil, dictionary.ErrUnavailable
			}
			return c.engine.Suggest(req.word, req.maxCount), nil
		},
		o.skipCache,
	)
	return c
}

// Enabled reports whether a dictionary engine is available.
func (c *Checker) Enabled() bool {
	return c != nil && c.engine != nil
}

// Disable turns the checker off for the rest of the session.
func (c *Checker) Disable(reason error) {
	if c == nil || c.engine == nil {
		return
	}
	log.Warn(log.CatSpell, "spell checking disabled", "reason", reason)
	c.engine = nil
}

// Check tokenizes text and classifies every token.
func (c *Checker) Check(text string) []Token {
	if !c.Enabled() {
		return nil
	}
	tokens := Tokenize(text)
	for i := range tokens {
		tokens[i].Correct = c.isCorrect(tokens[i].Word)
	}
	return tokens
}

func (c *Checker) isCorrect(word string) bool {
	if Skip(word, c.custom) != NotSkipped {
		return true
	}
	if c.engine.Check(word) {
		return true
	}
	// "Rhea's" passes when "Rhea" is known.
	if stem, ok := strings.CutSuffix(word, "'s"); ok && stem != "" {
		return c.engine.Check(stem)
	}
	return false
}

// Markers returns the ranges of misspelled words in text.
func (c *Checker) Markers(text string) []Marker {
	var out []Marker
	for _, tok := range c.Check(text) {
		if !tok.Correct {
			out = append(out, Marker{Start: tok.Start, Length: tok.End - tok.Start})
		}
	}
	return out
}

// Suggest returns up to maxCount corrections for word. Results are cached
// per word and count.
func (c *Checker) Suggest(ctx context.Context, word string, maxCount int) ([]string, error) {
	if !c.Enabled() {
		return nil, dictionary.ErrUnavailable
	}
	key := fmt.Sprintf("%s\x00%d", word, maxCount)
	out, err := c.suggestions.Get(ctx, key, suggestRequest{word: word, maxCount: maxCount}, suggestionTTL)
	if err != nil {
		return nil, fmt.Errorf("suggesting for %q: %w", word, err)
	}
	return out, nil
}

// InvalidateSuggestions clears cached suggestions, e.g. after the word
// list was reloaded.
func (c *Checker) InvalidateSuggestions(ctx context.Context) error {
	return c.suggestions.Invalidate(ctx)
}
