package domain

import "path/filepath"

const (
	// RecheckDirName is the name of the internal workspace directory.
	RecheckDirName = ".recheck"

	// HistoryDirName is the name of the JSON history store directory.
	HistoryDirName = "history"

	// HistoryDBName is the file name of the SQLite history database.
	HistoryDBName = "history.db"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "recheck.yaml"

	// DefaultTicketsDir is the directory scanned for ticket files when none is configured.
	DefaultTicketsDir = "tickets"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultHistoryPath returns the default path for the JSON history store.
// It joins .recheck and history.
func DefaultHistoryPath() string {
	return filepath.Join(RecheckDirName, HistoryDirName)
}

// DefaultHistoryDBPath returns the default path for the SQLite history database.
// It joins .recheck and history.db.
func DefaultHistoryDBPath() string {
	return filepath.Join(RecheckDirName, HistoryDBName)
}
