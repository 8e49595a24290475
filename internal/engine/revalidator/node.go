package revalidator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recheck/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/recheck/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/recheck/internal/adapters/llm"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/recheck/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/recheck/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/core/ports"
)

// NodeID is the unique identifier for the revalidator Graft node.
const NodeID graft.ID = "engine.revalidator"

func init() {
	graft.Register(graft.Node[*Revalidator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cas.NodeID,
			llm.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			config.ConfigNodeID,
		},
		Run: func(ctx context.Context) (*Revalidator, error) {
			store, err := graft.Dep[ports.HistoryStore](ctx)
			if err != nil {
				return nil, err
			}

			validator, err := graft.Dep[ports.FieldValidator](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return NewRevalidator(store, validator, tracer, log, cfg)
		},
	})
}
