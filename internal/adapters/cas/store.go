// Package cas implements the file-per-ticket validation history store.
package cas

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/zerr"
)

const entryExt = ".json"

// Store implements ports.HistoryStore using one JSON document per ticket.
type Store struct {
	dir string
}

// NewStore creates a new HistoryStore backed by the directory at the given path.
// The directory is created on first write.
func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, zerr.With(domain.ErrStoreCreateFailed, "path", dir)
	}
	return &Store{dir: filepath.Clean(dir)}, nil
}

// Dir returns the directory holding the entries.
func (s *Store) Dir() string {
	return s.dir
}

// Get retrieves the history entry for a given ticket key.
func (s *Store) Get(_ context.Context, ticketKey string) (*domain.HistoryEntry, error) {
	entry, err := s.read(s.getFilename(ticketKey))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(err, "ticket", ticketKey)
	}
	return entry, nil
}

// Put replaces the history entry for entry.TicketKey.
// The entry is written to a temporary file and renamed into place, so a failed
// write leaves the previous entry intact.
func (s *Store) Put(_ context.Context, entry domain.HistoryEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	tmp, err := os.CreateTemp(s.dir, ".entry-*.tmp")
	if err != nil {
		return zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}

	if err := os.Rename(tmpName, s.getFilename(entry.TicketKey)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "ticket", entry.TicketKey)
	}
	committed = true

	return nil
}

// List returns every stored entry ordered by ticket key.
func (s *Store) List(_ context.Context) ([]domain.HistoryEntry, error) {
	files, err := s.entryFiles()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryEntry, 0, len(files))
	for _, name := range files {
		entry, err := s.read(name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}

	slices.SortFunc(entries, func(a, b domain.HistoryEntry) int {
		return cmp.Compare(a.TicketKey, b.TicketKey)
	})
	return entries, nil
}

// Clear removes every stored entry.
func (s *Store) Clear(_ context.Context) error {
	files, err := s.entryFiles()
	if err != nil {
		return zerr.Wrap(err, domain.ErrHistoryClearFailed.Error())
	}
	for _, name := range files {
		if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return zerr.With(zerr.Wrap(err, domain.ErrHistoryClearFailed.Error()), "file", name)
		}
	}
	return nil
}

func (s *Store) read(filename string) (*domain.HistoryEntry, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
	}

	var entry domain.HistoryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "file", filename)
	}
	return &entry, nil
}

func (s *Store) entryFiles() ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
	}

	files := make([]string, 0, len(dirEntries))
	for _, d := range dirEntries {
		if d.IsDir() || filepath.Ext(d.Name()) != entryExt {
			continue
		}
		files = append(files, filepath.Join(s.dir, d.Name()))
	}
	return files, nil
}

func (s *Store) getFilename(ticketKey string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%016x%s", xxhash.Sum64String(ticketKey), entryExt))
}
