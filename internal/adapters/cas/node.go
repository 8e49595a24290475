package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recheck/internal/adapters/config" //nolint:depguard // Store location comes from config
	"go.trai.ch/recheck/internal/adapters/sqlite" //nolint:depguard // Alternate store driver
	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the history store Graft node.
const NodeID graft.ID = "adapter.history_store"

func init() {
	graft.Register(graft.Node[ports.HistoryStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.HistoryStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return OpenStore(cfg.Store)
		},
	})
}

// OpenStore opens the history store selected by the store configuration.
func OpenStore(cfg domain.StoreConfig) (ports.HistoryStore, error) {
	switch cfg.Driver {
	case domain.StoreSQLite:
		store, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case domain.StoreJSON, "":
		store, err := NewStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, zerr.With(domain.ErrConfigInvalid, "store.driver", string(cfg.Driver))
	}
}
