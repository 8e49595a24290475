package llm

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/recheck/internal/adapters/config" //nolint:depguard // Validator settings come from config
	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/core/ports"
)

// NodeID is the unique identifier for the field validator Graft node.
const NodeID graft.ID = "adapter.field_validator"

func init() {
	graft.Register(graft.Node[ports.FieldValidator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.FieldValidator, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewValidator(cfg.Validator, os.Getenv), nil
		},
	})
}
