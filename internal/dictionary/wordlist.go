package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"github.com/sahilm/fuzzy"

	"github.com/zjrosen/quill/internal/log"
)

// DefaultPaths are the system word lists tried when no path is configured.
var DefaultPaths = []string{
	"/usr/share/dict/words",
	"/usr/dict/words",
	"/usr/share/dict/web2",
}

// WordList is an Engine backed by a plain list of words.
type WordList struct {
	words map[string]struct{}
	// byLen buckets lowercase words by rune count for suggestion lookups.
	byLen map[int][]string
}

var _ Engine = (*WordList)(nil)

// NewWordList builds an engine from words.
func NewWordList(words []string) *WordList {
	wl := &WordList{
		words: make(map[string]struct{}, len(words)),
		byLen: make(map[int][]string),
	}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, dup := wl.words[w]; dup {
			continue
		}
		wl.words[w] = struct{}{}
		lower := strings.ToLower(w)
		n := utf8.RuneCountInString(lower)
		wl.byLen[n] = append(wl.byLen[n], lower)
	}
	for n := range wl.byLen {
		sort.Strings(wl.byLen[n])
		wl.byLen[n] = compactSorted(wl.byLen[n])
	}
	return wl
}

// ReadWordList reads one word per line from r. Lines starting with '#'
// are ignored.
func ReadWordList(r io.Reader) (*WordList, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return NewWordList(words), nil
}

// Open loads the word list at path, or the first readable DefaultPaths
// entry when path is empty. It returns an error wrapping ErrUnavailable
// when nothing could be loaded.
func Open(path string) (*WordList, error) {
	candidates := DefaultPaths
	if path != "" {
		candidates = []string{path}
	}
	for _, p := range candidates {
		f, err := os.Open(p) //nolint:gosec // G304: word list path comes from user config
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Warn(log.CatDict, "word list not readable", "path", p, "error", err)
			}
			continue
		}
		wl, err := ReadWordList(f)
		_ = f.Close()
		if err != nil {
			log.ErrorErr(log.CatDict, "failed to read word list", err, "path", p)
			continue
		}
		if wl.Len() == 0 {
			continue
		}
		log.Info(log.CatDict, "word list loaded", "path", p, "words", wl.Len())
		return wl, nil
	}
	return nil, fmt.Errorf("no word list in %s: %w", strings.Join(candidates, ", "), ErrUnavailable)
}

// Len returns the number of distinct entries.
func (wl *WordList) Len() int { return len(wl.words) }

// Check reports whether word is known. A capitalized or all-caps form of a
// known lowercase word is accepted; a lowercase form of a proper noun is not.
func (wl *WordList) Check(word string) bool {
	if word == "" {
		return true
	}
	if _, ok := wl.words[word]; ok {
		return true
	}
	lower := strings.ToLower(word)
	if lower == word {
		return false
	}
	if _, ok := wl.words[lower]; ok {
		return true
	}
	// "Paris" is listed; "PARIS" should pass too.
	r, size := utf8.DecodeRuneInString(lower)
	title := string(unicode.ToUpper(r)) + lower[size:]
	_, ok := wl.words[title]
	return ok
}

// Suggest returns up to maxCount known words close to word, best first.
// Candidates within edit distance two are ranked by distance, then by
// fuzzy match score, then alphabetically.
func (wl *WordList) Suggest(word string, maxCount int) []string {
	if maxCount <= 0 || word == "" {
		return nil
	}
	lower := strings.ToLower(word)
	n := utf8.RuneCountInString(lower)

	var pool []string
	for l := n - 2; l <= n+2; l++ {
		pool = append(pool, wl.byLen[l]...)
	}
	if len(pool) == 0 {
		return nil
	}

	scores := make(map[string]int)
	for _, m := range fuzzy.Find(lower, pool) {
		scores[m.Str] = m.Score
	}

	type candidate struct {
		word  string
		dist  int
		score int
	}
	var cands []candidate
	for _, w := range pool {
		if w == lower {
			continue
		}
		d := editDistance(lower, w, 2)
		if d > 2 {
			continue
		}
		cands = append(cands, candidate{word: w, dist: d, score: scores[w]})
	}
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return a.word < b.word
	})

	out := make([]string, 0, min(maxCount, len(cands)))
	for _, c := range cands[:min(maxCount, len(cands))] {
		out = append(out, matchCase(word, c.word))
	}
	return out
}

// matchCase gives a suggestion the capitalization of the word it replaces.
func matchCase(orig, suggestion string) string {
	r, _ := utf8.DecodeRuneInString(orig)
	if !unicode.IsUpper(r) {
		return suggestion
	}
	if strings.ToUpper(orig) == orig && utf8.RuneCountInString(orig) > 1 {
		return strings.ToUpper(suggestion)
	}
	s, size := utf8.DecodeRuneInString(suggestion)
	return string(unicode.ToUpper(s)) + suggestion[size:]
}

// editDistance is the optimal string alignment distance between a and b,
// counting adjacent transpositions as one edit. Anything over limit is
// reported as limit+1.
func editDistance(a, b string, limit int) int {
	if d := utf8.RuneCountInString(a) - utf8.RuneCountInString(b); d > limit || -d > limit {
		return limit + 1
	}
	return min(edlib.OSADamerauLevenshteinDistance(a, b), limit+1)
}

func compactSorted(s []string) []string {
	if len(s) < 2 {
		return s
	}
	out := s[:1]
	for _, w := range s[1:] {
		if w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	return out
}
