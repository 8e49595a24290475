// Package sqlite implements the validation history store on an embedded SQLite database.
package sqlite

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/zerr"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const poolSize = 4

const schema = `
CREATE TABLE IF NOT EXISTS history (
	ticket_key TEXT PRIMARY KEY NOT NULL,
	payload    TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// Store implements ports.HistoryStore on a pool of SQLite connections.
type Store struct {
	pool *sqlitex.Pool
	path string
}

// Open creates the database at path if needed and returns a Store backed by it.
// The caller must call Close when the store is no longer needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, zerr.With(domain.ErrStoreCreateFailed, "path", path)
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", path)
		}
	}

	pool, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize:    poolSize,
		PrepareConn: prepareConnection,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", path)
	}

	return &Store{pool: pool, path: path}, nil
}

// prepareConnection applies the pragmas every connection needs and ensures the schema exists.
func prepareConnection(conn *sqlite.Conn) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=FULL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if err := sqlitex.ExecuteTransient(conn, pragma, nil); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "pragma", pragma)
		}
	}

	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes every pooled connection.
func (s *Store) Close() error {
	if err := s.pool.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close history database"), "path", s.path)
	}
	return nil
}

// Get retrieves the history entry for a given ticket key.
func (s *Store) Get(ctx context.Context, ticketKey string) (*domain.HistoryEntry, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
	}
	defer s.pool.Put(conn)

	var entry *domain.HistoryEntry
	err = sqlitex.Execute(conn, "SELECT payload FROM history WHERE ticket_key = ?", &sqlitex.ExecOptions{
		Args: []any{ticketKey},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			decoded, err := decode(stmt.ColumnText(0))
			if err != nil {
				return err
			}
			entry = decoded
			return nil
		},
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHistoryReadFailed.Error()), "ticket", ticketKey)
	}
	return entry, nil
}

// Put replaces the history entry for entry.TicketKey inside an IMMEDIATE transaction.
func (s *Store) Put(ctx context.Context, entry domain.HistoryEntry) (err error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	conn, err := s.pool.Take(ctx)
	if err != nil {
		return zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}
	defer s.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}
	defer endTransaction(&err)

	err = sqlitex.Execute(conn,
		`INSERT INTO history (ticket_key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(ticket_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		&sqlitex.ExecOptions{
			Args: []any{entry.TicketKey, string(payload), entry.Timestamp.UnixNano()},
		})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "ticket", entry.TicketKey)
	}
	return nil
}

// List returns every stored entry ordered by ticket key.
func (s *Store) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
	}
	defer s.pool.Put(conn)

	var entries []domain.HistoryEntry
	err = sqlitex.Execute(conn, "SELECT payload FROM history ORDER BY ticket_key", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			entry, err := decode(stmt.ColumnText(0))
			if err != nil {
				return err
			}
			entries = append(entries, *entry)
			return nil
		},
	})
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
	}
	return entries, nil
}

// Clear removes every stored entry.
func (s *Store) Clear(ctx context.Context) error {
	conn, err := s.pool.Take(ctx)
	if err != nil {
		return zerr.Wrap(err, domain.ErrHistoryClearFailed.Error())
	}
	defer s.pool.Put(conn)

	if err := sqlitex.ExecuteTransient(conn, "DELETE FROM history", nil); err != nil {
		return zerr.Wrap(err, domain.ErrHistoryClearFailed.Error())
	}
	return nil
}

func decode(payload string) (*domain.HistoryEntry, error) {
	var entry domain.HistoryEntry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}
	return &entry, nil
}
