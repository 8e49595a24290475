package domain

import (
	"path/filepath"
	"time"
)

// StoreDriver selects the history store backend.
type StoreDriver string

const (
	// StoreJSON keeps one JSON document per ticket in a directory.
	StoreJSON StoreDriver = "json"
	// StoreSQLite keeps every entry in a single SQLite database.
	StoreSQLite StoreDriver = "sqlite"
)

const (
	// DefaultValidatorEndpoint is the base URL of the OpenAI-compatible API.
	DefaultValidatorEndpoint = "https://api.openai.com/v1"
	// DefaultValidatorModel is the model asked to judge fields.
	DefaultValidatorModel = "gpt-4o-mini"
	// DefaultAPIKeyEnv is the environment variable holding the validator API key.
	DefaultAPIKeyEnv = "OPENAI_API_KEY"
	// DefaultValidatorTimeout bounds a single field validation request.
	DefaultValidatorTimeout = 60 * time.Second
	// DefaultParallelism bounds how many tickets are validated at once.
	DefaultParallelism = 4
)

// StoreConfig configures the history store.
type StoreConfig struct {
	Driver StoreDriver
	Path   string
}

// ValidatorConfig configures the field validator client.
type ValidatorConfig struct {
	Endpoint  string
	Model     string
	APIKeyEnv string
	Timeout   time.Duration
}

// Config is the resolved project configuration.
type Config struct {
	// Root is the directory containing recheck.yaml. Relative paths are resolved against it.
	Root           string
	TicketsDir     string
	Fields         []Field
	DefaultRules   string
	Rules          map[Field]string
	ProductContext string
	Scoring        ScorePolicy
	// RetryDegraded re-evaluates stored degraded fields even when the ticket is unchanged.
	RetryDegraded bool
	Store         StoreConfig
	Validator     ValidatorConfig
	Parallelism   int
}

// DefaultConfig returns the configuration used when no recheck.yaml exists under root.
func DefaultConfig(root string) *Config {
	return &Config{
		Root:       root,
		TicketsDir: filepath.Join(root, DefaultTicketsDir),
		Fields:     DefaultValidatedFields(),
		Rules:      map[Field]string{},
		Scoring:    DefaultScorePolicy(),
		Store: StoreConfig{
			Driver: StoreJSON,
			Path:   filepath.Join(root, DefaultHistoryPath()),
		},
		Validator: ValidatorConfig{
			Endpoint:  DefaultValidatorEndpoint,
			Model:     DefaultValidatorModel,
			APIKeyEnv: DefaultAPIKeyEnv,
			Timeout:   DefaultValidatorTimeout,
		},
		Parallelism: DefaultParallelism,
	}
}

// RulesFor returns the rules text that applies to the given field.
func (c *Config) RulesFor(f Field) string {
	if rules, ok := c.Rules[f]; ok && rules != "" {
		return rules
	}
	return c.DefaultRules
}
