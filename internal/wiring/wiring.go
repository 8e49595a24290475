// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/recheck/internal/adapters/cas"
	_ "go.trai.ch/recheck/internal/adapters/config"
	_ "go.trai.ch/recheck/internal/adapters/llm"
	_ "go.trai.ch/recheck/internal/adapters/logger"
	_ "go.trai.ch/recheck/internal/adapters/telemetry"
	_ "go.trai.ch/recheck/internal/adapters/tickets"
	_ "go.trai.ch/recheck/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/recheck/internal/app"
	_ "go.trai.ch/recheck/internal/engine/revalidator"
)
