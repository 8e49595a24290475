package ports

import (
	"context"

	"go.trai.ch/recheck/internal/core/domain"
)

// TicketSource supplies ticket snapshots.
//
//go:generate go run go.uber.org/mock/mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks
type TicketSource interface {
	// Fetch returns the current snapshot of a single ticket.
	Fetch(ctx context.Context, key string) (domain.Snapshot, error)

	// List returns the current snapshot of every ticket, ordered by key.
	List(ctx context.Context) ([]domain.Snapshot, error)

	// Locate maps a changed file path to the ticket key it holds.
	Locate(path string) (key string, ok bool)
}
