package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/recheck/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/recheck/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/recheck/internal/adapters/llm"       //nolint:depguard // Wired in app layer
	"go.trai.ch/recheck/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/recheck/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/recheck/internal/adapters/tickets"   //nolint:depguard // Wired in app layer
	"go.trai.ch/recheck/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/core/ports"
	"go.trai.ch/recheck/internal/engine/revalidator"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			tickets.NodeID,
			llm.NodeID,
			cas.NodeID,
			revalidator.NodeID,
			telemetry.OTelNodeID,
			watcher.NodeID,
			logger.NodeID,
			config.ConfigNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(a, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	source, err := graft.Dep[ports.TicketSource](ctx)
	if err != nil {
		return nil, err
	}

	validator, err := graft.Dep[ports.FieldValidator](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.HistoryStore](ctx)
	if err != nil {
		return nil, err
	}

	reval, err := graft.Dep[*revalidator.Revalidator](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[*telemetry.OTelTracer](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
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

	return New(source, validator, store, reval, tracer, w, log, cfg.TicketsDir), nil
}
