// Package store loads and saves the canonical text of one document.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/zjrosen/quill/internal/log"
)

// ErrNotFound is returned by Load when the file does not exist yet.
var ErrNotFound = errors.New("document not found")

// Hash identifies file content.
type Hash [32]byte

// HashOf returns the content hash of data.
func HashOf(data []byte) Hash {
	return Hash(blake3.Sum256(data))
}

// FileStore reads and writes a document file. It remembers the hash of the
// content it last loaded or saved so a watcher can tell our own writes
// apart from external edits.
type FileStore struct {
	path string

	mu   sync.Mutex
	last Hash
	seen bool
}

// New returns a store for path. The file need not exist.
func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the document path.
func (s *FileStore) Path() string { return s.path }

// Load reads the document. A missing file yields ErrNotFound.
func (s *FileStore) Load(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("loading %s: %w", s.path, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", s.path, err)
	}
	s.remember(HashOf(data))
	log.Debug(log.CatStore, "Loaded document", "path", s.path, "bytes", len(data))
	return string(data), nil
}

// Save writes text through a temp file in the same directory and renames it
// over the document, so readers never see a partial file. The existing
// file mode is kept.
func (s *FileStore) Save(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := []byte(text)
	dir := filepath.Dir(s.path)

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	temp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Chmod(mode); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	// Remember before the rename so a watcher event racing the rename is
	// already recognized as ours.
	prev, prevSeen := s.LastHash()
	s.remember(HashOf(data))
	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		s.restore(prev, prevSeen)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	log.Debug(log.CatStore, "Saved document", "path", s.path, "bytes", len(data))
	return nil
}

// LastHash returns the hash of the content last loaded or saved.
func (s *FileStore) LastHash() (Hash, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.seen
}

// IsCurrent reports whether h matches the content last loaded or saved.
func (s *FileStore) IsCurrent(h Hash) bool {
	last, ok := s.LastHash()
	return ok && last == h
}

func (s *FileStore) remember(h Hash) {
	s.mu.Lock()
	s.last = h
	s.seen = true
	s.mu.Unlock()
}

func (s *FileStore) restore(h Hash, seen bool) {
	s.mu.Lock()
	s.last = h
	s.seen = seen
	s.mu.Unlock()
}
