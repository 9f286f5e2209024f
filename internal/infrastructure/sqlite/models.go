package sqlite

import (
	"strings"
	"time"

	"github.com/zjrosen/quill/internal/dictionary"
)

// WordModel represents a row of the custom_words table.
type WordModel struct {
	ID        int64
	Word      string
	WordLower string
	AddedAt   int64 // Unix timestamp
}

func toWordModel(word string, now time.Time) *WordModel {
	word = strings.TrimSpace(word)
	return &WordModel{
		Word:      word,
		WordLower: strings.ToLower(word),
		AddedAt:   now.Unix(),
	}
}

func (m *WordModel) toEntry() dictionary.Entry {
	return dictionary.Entry{
		Word:    m.Word,
		AddedAt: time.Unix(m.AddedAt, 0),
	}
}
