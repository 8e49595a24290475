package ports

import (
	"time"

	"go.trai.ch/recheck/internal/core/domain"
)

// Renderer is the abstraction for output rendering.
// It decouples the revalidation engine from presentation.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// OnPlan is called once with every ticket key about to be validated.
	OnPlan(ticketKeys []string)

	// OnTicketStart is called when a traced unit of work begins.
	OnTicketStart(spanID, name string, startTime time.Time)

	// OnTicketComplete is called when a traced unit of work ends.
	// err is nil on success.
	OnTicketComplete(spanID string, endTime time.Time, err error)

	// OnOutcome reports the result of one ticket revalidation.
	OnOutcome(outcome domain.Outcome)

	// OnHistory prints stored history entries.
	OnHistory(entries []domain.HistoryEntry)

	// Flush writes any buffered output.
	Flush() error
}
