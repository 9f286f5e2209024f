package spell

import (
	"strings"
	"unicode"

	"github.com/zjrosen/quill/internal/dictionary"
	"github.com/zjrosen/quill/internal/markup"
)

// SkipReason says why a token is treated as correct without a dictionary
// lookup. The zero value means the token must be checked.
type SkipReason int

const (
	NotSkipped SkipReason = iota
	SkipCustom
	SkipURL
	SkipEmail
	SkipMixedAlphanumeric
	SkipAllCaps
	SkipDigits
	SkipUnderscore
)

func (r SkipReason) String() string {
	switch r {
	case NotSkipped:
		return "check"
	case SkipCustom:
		return "custom"
	case SkipURL:
		return "url"
	case SkipEmail:
		return "email"
	case SkipMixedAlphanumeric:
		return "mixed-alphanumeric"
	case SkipAllCaps:
		return "all-caps"
	case SkipDigits:
		return "digits"
	case SkipUnderscore:
		return "underscore"
	default:
		return "unknown"
	}
}

// Skip applies the skip-list to word in order. custom may be nil.
func Skip(word string, custom dictionary.Custom) SkipReason {
	switch {
	case custom != nil && custom.Contains(word):
		return SkipCustom
	case fullMatch(markup.URLMatches(word), word):
		return SkipURL
	case fullMatch(markup.EmailMatches(word), word):
		return SkipEmail
	}

	var letters, digits, upper int
	for _, r := range word {
		switch {
		case unicode.IsLetter(r):
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		case unicode.IsDigit(r):
			digits++
		}
	}
	switch {
	case letters > 0 && digits > 0:
		return SkipMixedAlphanumeric
	case letters > 1 && upper == letters:
		return SkipAllCaps
	case digits > 0 && letters == 0 && !strings.ContainsRune(word, '_'):
		return SkipDigits
	case strings.ContainsRune(word, '_'):
		return SkipUnderscore
	}
	return NotSkipped
}

func fullMatch(ivs []markup.Interval, word string) bool {
	return len(ivs) == 1 && ivs[0].Start == 0 && ivs[0].End == len(word)
}
