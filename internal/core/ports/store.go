// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/recheck/internal/core/domain"
)

// HistoryStore is the durable mapping from ticket key to its latest validation record.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type HistoryStore interface {
	// Get retrieves the history entry for a ticket key.
	// Returns nil, nil if the ticket has never been validated.
	Get(ctx context.Context, ticketKey string) (*domain.HistoryEntry, error)

	// Put replaces the history entry for entry.TicketKey.
	// The write is durable and all-or-nothing once Put returns.
	Put(ctx context.Context, entry domain.HistoryEntry) error

	// List returns every stored entry ordered by ticket key.
	List(ctx context.Context) ([]domain.HistoryEntry, error)

	// Clear removes every stored entry.
	Clear(ctx context.Context) error
}
