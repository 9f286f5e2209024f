package overlay

import (
	"unicode"
	"unicode/utf8"
)

// Class is the character class of a token.
type Class int

const (
	ClassLetter Class = iota
	ClassDigit
	ClassSpace
	ClassPunct
	// ClassUnderscore is separate from letters so "test_variable" splits
	// into "test", "_", "variable".
	ClassUnderscore
)

func (c Class) String() string {
	switch c {
	case ClassLetter:
		return "letter"
	case ClassDigit:
		return "digit"
	case ClassSpace:
		return "space"
	case ClassPunct:
		return "punct"
	case ClassUnderscore:
		return "underscore"
	default:
		return "unknown"
	}
}

// Token is a maximal run of characters of one class. Start and End are
// byte offsets into the tokenized string.
type Token struct {
	Class Class
	Text  string
	Start int
	End   int
}

// Runes returns the token length in characters.
func (t Token) Runes() int { return utf8.RuneCountInString(t.Text) }

func classOf(r rune) Class {
	switch {
	case r == '_':
		return ClassUnderscore
	case unicode.IsLetter(r), unicode.Is(unicode.Mn, r):
		return ClassLetter
	case unicode.IsDigit(r):
		return ClassDigit
	case unicode.IsSpace(r):
		return ClassSpace
	default:
		return ClassPunct
	}
}

// Tokenize splits text into class runs. Concatenating the tokens' Text
// reproduces text exactly; nothing is dropped or merged across classes.
func Tokenize(text string) []Token {
	var out []Token
	start := 0
	cur := Class(-1)
	for i, r := range text {
		c := classOf(r)
		if c != cur && i > start {
			out = append(out, Token{Class: cur, Text: text[start:i], Start: start, End: i})
			start = i
		}
		cur = c
	}
	if start < len(text) {
		out = append(out, Token{Class: cur, Text: text[start:], Start: start, End: len(text)})
	}
	return out
}
