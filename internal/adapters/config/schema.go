package config

// Recheckfile represents the structure of the recheck.yaml configuration file.
type Recheckfile struct {
	Version       string            `yaml:"version"`
	Tickets       TicketsDTO        `yaml:"tickets"`
	Fields        []string          `yaml:"fields"`
	Rules         map[string]string `yaml:"rules"`
	Context       string            `yaml:"context"`
	Scoring       ScoringDTO        `yaml:"scoring"`
	RetryDegraded bool              `yaml:"retry_degraded"`
	Store         StoreDTO          `yaml:"store"`
	Validator     ValidatorDTO      `yaml:"validator"`
	Parallelism   int               `yaml:"parallelism"`
}

// TicketsDTO configures where ticket files are read from.
type TicketsDTO struct {
	Dir string `yaml:"dir"`
}

// ScoringDTO configures how the aggregate score and validity are computed.
type ScoringDTO struct {
	Threshold *int   `yaml:"threshold"`
	Rounding  string `yaml:"rounding"`
}

// StoreDTO configures the history store.
type StoreDTO struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// ValidatorDTO configures the field validator client.
type ValidatorDTO struct {
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	Timeout   string `yaml:"timeout"`
}
