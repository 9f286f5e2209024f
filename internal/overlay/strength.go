// Package overlay implements the bionic reading aid: a display-only pass
// that bolds the leading letters of each word.
//
// The overlay never produces a markup.Document. Its output is a View, which
// the serializer does not accept, so an overlaid rendering cannot leak back
// into canonical text.
package overlay

import (
	"fmt"
	"math"
	"strings"
)

// Strength selects how much of each word is bolded.
type Strength int

const (
	Light Strength = iota
	Medium
	Strong
)

func (s Strength) String() string {
	switch s {
	case Light:
		return "light"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	default:
		return fmt.Sprintf("strength(%d)", int(s))
	}
}

// Valid reports whether s is one of the defined strengths.
func (s Strength) Valid() bool {
	return s >= Light && s <= Strong
}

// ParseStrength converts a config or flag value to a Strength.
func ParseStrength(v string) (Strength, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "light":
		return Light, nil
	case "medium", "":
		return Medium, nil
	case "strong":
		return Strong, nil
	default:
		return Medium, fmt.Errorf("invalid bionic strength %q (expected light, medium or strong)", v)
	}
}

// PrefixLength returns how many leading characters of a word of length n
// are bolded. One-character words are always bolded in full.
func PrefixLength(n int, s Strength) int {
	if n <= 0 {
		return 0
	}
	if n == 1 {
		return 1
	}
	var k int
	switch s {
	case Light:
		k = max(1, int(math.Floor(float64(n)/2.5)))
	case Strong:
		k = min(n-1, int(math.Ceil(float64(n)*0.6)))
	default:
		k = int(math.Ceil(float64(n) / 2))
	}
	return min(max(k, 1), n)
}
