// Package spell finds misspelled words and reports their exact byte ranges.
package spell

import (
	"regexp"
	"sort"
	"strings"

	"github.com/zjrosen/quill/internal/markup"
)

// Token is one checked word. Start and End are byte offsets into the text
// that was tokenized and bound exactly Word.
type Token struct {
	Word    string
	Start   int
	End     int
	Correct bool
}

// Marker is the underline drawn under a misspelled word.
type Marker struct {
	Start  int
	Length int
}

// wordPattern matches word candidates: letters, marks, digits, underscores
// and apostrophes. Quotes at either end are trimmed afterwards.
var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_'’]+`)

const quotes = "'’"

// Tokenize returns the word tokens of text in order. URLs and email
// addresses are returned as single tokens so the skip-list can recognize
// them. Leading and trailing quotes are removed from each word and the
// offsets are moved to match.
func Tokenize(text string) []Token {
	var out []Token
	lineStart := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		out = append(out, tokenizeLine(strings.TrimSuffix(line, "\n"), lineStart)...)
		lineStart += len(line)
	}
	return out
}

func tokenizeLine(line string, base int) []Token {
	if line == "" {
		return nil
	}
	protected := append(markup.URLMatches(line), markup.EmailMatches(line)...)
	sort.Slice(protected, func(i, j int) bool { return protected[i].Start < protected[j].Start })

	var out []Token
	covered := 0
	for _, iv := range protected {
		if iv.Start < covered {
			continue
		}
		out = append(out, wordsIn(line, covered, iv.Start, base)...)
		out = append(out, Token{Word: line[iv.Start:iv.End], Start: base + iv.Start, End: base + iv.End})
		covered = iv.End
	}
	return append(out, wordsIn(line, covered, len(line), base)...)
}

func wordsIn(line string, from, to, base int) []Token {
	var out []Token
	for _, loc := range wordPattern.FindAllStringIndex(line[from:to], -1) {
		start, end := from+loc[0], from+loc[1]
		word := line[start:end]
		trimmedLeft := strings.TrimLeft(word, quotes)
		start += len(word) - len(trimmedLeft)
		word = strings.TrimRight(trimmedLeft, quotes)
		end = start + len(word)
		if word == "" {
			continue
		}
		out = append(out, Token{Word: word, Start: base + start, End: base + end})
	}
	return out
}
