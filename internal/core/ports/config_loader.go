package ports

import "go.trai.ch/recheck/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
type ConfigLoader interface {
	// Load finds recheck.yaml by walking up from cwd and returns the resolved configuration.
	// When no file exists, the defaults rooted at cwd are returned.
	Load(cwd string) (*domain.Config, error)
}
