// Package layer draws floating boxes over a rendered screen without
// clearing what is underneath.
package layer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is where a box is anchored.
type Position int

const (
	Center Position = iota
	Top
	Bottom
)

// Config describes the screen and the anchor.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadY     int // rows kept free at the anchored edge, for Top and Bottom
}

// Place draws fg over bg. Both may carry ANSI styling; cells of bg left
// and right of fg keep theirs.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))
	for i, fl := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		bl := bgLines[row]
		left := ansi.Truncate(bl, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		var right string
		if end := x + ansi.StringWidth(fl); end < ansi.StringWidth(bl) {
			right = ansi.TruncateLeft(bl, end, "")
		}
		bgLines[row] = left + fl + right
	}
	return strings.Join(bgLines, "\n")
}

func origin(cfg Config, w, h int) (x, y int) {
	x = (cfg.Width - w) / 2
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	case Bottom:
		y = cfg.Height - h - cfg.PadY
	default:
		y = (cfg.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}
