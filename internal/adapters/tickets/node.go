package tickets

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recheck/internal/adapters/config" //nolint:depguard // Tickets directory comes from config
	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/core/ports"
)

// NodeID is the unique identifier for the ticket source Graft node.
const NodeID graft.ID = "adapter.ticket_source"

func init() {
	graft.Register(graft.Node[ports.TicketSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.TicketSource, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewSource(cfg.TicketsDir), nil
		},
	})
}
