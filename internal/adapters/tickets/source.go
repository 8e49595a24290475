// Package tickets reads ticket snapshots from a directory of YAML files.
package tickets

import (
	"cmp"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Source implements ports.TicketSource over <dir>/*.yaml and <dir>/*.yml, one ticket per file.
// A file without a key takes its file name (without extension) as the key.
type Source struct {
	dir string

	mu    sync.Mutex
	paths map[string]string // file path -> ticket key, as of the last scan
}

// NewSource creates a Source reading from dir.
func NewSource(dir string) *Source {
	return &Source{
		dir:   filepath.Clean(dir),
		paths: make(map[string]string),
	}
}

// Dir returns the directory scanned for ticket files.
func (s *Source) Dir() string {
	return s.dir
}

// Fetch returns the current snapshot of the ticket with the given key.
func (s *Source) Fetch(ctx context.Context, key string) (domain.Snapshot, error) {
	snapshots, err := s.List(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	for _, snap := range snapshots {
		if snap.Key == key {
			return snap, nil
		}
	}
	return domain.Snapshot{}, zerr.With(zerr.Wrap(domain.ErrTicketNotFound, "failed to fetch ticket"), "ticket", key)
}

// List returns the current snapshot of every ticket, ordered by key.
func (s *Source) List(ctx context.Context) ([]domain.Snapshot, error) {
	files, err := s.ticketFiles()
	if err != nil {
		return nil, err
	}

	snapshots := make([]domain.Snapshot, 0, len(files))
	paths := make(map[string]string, len(files))
	owners := make(map[string]string, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		snap, err := readTicket(path)
		if err != nil {
			return nil, err
		}
		if other, dup := owners[snap.Key]; dup {
			err := zerr.With(domain.ErrDuplicateTicket, "ticket", snap.Key)
			return nil, zerr.With(zerr.With(err, "file", path), "other_file", other)
		}
		owners[snap.Key] = path
		paths[path] = snap.Key
		snapshots = append(snapshots, snap)
	}

	s.mu.Lock()
	s.paths = paths
	s.mu.Unlock()

	slices.SortFunc(snapshots, func(a, b domain.Snapshot) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return snapshots, nil
}

// Locate maps a changed file path to the ticket key it holds.
// Files that can no longer be read resolve through the last scan.
func (s *Source) Locate(path string) (string, bool) {
	path = filepath.Clean(path)
	if filepath.Dir(path) != s.dir || !isTicketFile(path) {
		return "", false
	}

	if snap, err := readTicket(path); err == nil {
		return snap.Key, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key, ok := s.paths[path]
	return key, ok
}

func (s *Source) ticketFiles() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTicketReadFailed.Error()), "dir", s.dir)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isTicketFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(s.dir, entry.Name()))
	}
	return files, nil
}

func isTicketFile(name string) bool {
	if strings.HasPrefix(filepath.Base(name), ".") {
		return false
	}
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func readTicket(path string) (domain.Snapshot, error) {
	// #nosec G304 -- path comes from the configured tickets directory
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Snapshot{}, zerr.With(zerr.Wrap(err, domain.ErrTicketReadFailed.Error()), "file", path)
	}

	var snap domain.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, zerr.With(zerr.Wrap(err, domain.ErrTicketReadFailed.Error()), "file", path)
	}

	snap.Key = strings.TrimSpace(snap.Key)
	if snap.Key == "" {
		snap.Key = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return snap, nil
}
