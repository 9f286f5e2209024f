package cmd

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/dictionary"
	"github.com/zjrosen/quill/internal/infrastructure/sqlite"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/spell"
)

var errNoCustomDB = errors.New("no custom dictionary path configured (dictionary.custom_db)")

// spelling holds the spell-check collaborators of one run.
type spelling struct {
	checker *spell.Checker
	custom  *dictionary.CustomDictionary
	db      *sqlite.DB
}

// openSpelling is best effort: a missing word list disables checking and
// a broken custom dictionary only loses the user's words.
func openSpelling(ctx context.Context, cfg config.DictionaryConfig) *spelling {
	sp := &spelling{}

	var engine dictionary.Engine
	if wl, err := dictionary.Open(cfg.Path); err != nil {
		log.Warn(log.CatDict, "Spell checking disabled", "error", err)
	} else {
		engine = wl
	}

	var custom dictionary.Custom
	if db, cd, err := openCustom(ctx, cfg.CustomDB); err != nil {
		log.Warn(log.CatDB, "Custom dictionary unavailable", "error", err)
	} else {
		sp.db, sp.custom = db, cd
		custom = cd
	}

	sp.checker = spell.NewChecker(engine, custom)
	return sp
}

func openCustom(ctx context.Context, path string) (*sqlite.DB, *dictionary.CustomDictionary, error) {
	if path == "" {
		return nil, nil, errNoCustomDB
	}
	db, err := sqlite.NewDB(path)
	if err != nil {
		return nil, nil, err
	}
	cd, err := dictionary.LoadCustom(ctx, db.WordRepository())
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, cd, nil
}

func (s *spelling) close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "Closing custom dictionary failed", err)
		}
	}
}

// lineCol converts a byte offset into a 1-based line and rune column.
func lineCol(text string, off int) (int, int) {
	before := text[:off]
	line := strings.Count(before, "\n") + 1
	start := strings.LastIndexByte(before, '\n') + 1
	return line, utf8.RuneCountInString(before[start:]) + 1
}
