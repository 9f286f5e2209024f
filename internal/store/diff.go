package store

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Delta counts the characters an external edit inserted and deleted.
type Delta struct {
	Inserted int
	Deleted  int
}

// Empty reports whether the two texts were identical.
func (d Delta) Empty() bool {
	return d.Inserted == 0 && d.Deleted == 0
}

func (d Delta) String() string {
	return fmt.Sprintf("+%d -%d", d.Inserted, d.Deleted)
}

// Compare diffs before against after and counts changed runes.
func Compare(before, after string) Delta {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var d Delta
	for _, diff := range diffs {
		n := utf8.RuneCountInString(diff.Text)
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			d.Inserted += n
		case diffmatchpatch.DiffDelete:
			d.Deleted += n
		}
	}
	return d
}
