// Package config provides the configuration loader for recheck.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/recheck/internal/core/domain"
	"go.trai.ch/recheck/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration schema version this loader understands.
const SupportedVersion = "1"

// defaultRulesKey holds the rules applied to every field without its own entry.
const defaultRulesKey = "default"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds recheck.yaml by walking up from cwd and resolves it into a domain.Config.
// When no file is found the defaults rooted at cwd are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, err := findConfiguration(cwd)
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) {
			return domain.DefaultConfig(filepath.Clean(cwd)), nil
		}
		return nil, err
	}

	var file Recheckfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "file", configPath)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", configPath, file.Version, SupportedVersion))
	}

	cfg, err := resolve(filepath.Dir(configPath), &file)
	if err != nil {
		return nil, zerr.With(err, "file", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, error) {
	currentDir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

// resolve applies defaults to every omitted key and validates the result.
func resolve(root string, file *Recheckfile) (*domain.Config, error) {
	cfg := domain.DefaultConfig(root)

	if file.Tickets.Dir != "" {
		cfg.TicketsDir = resolvePath(root, file.Tickets.Dir)
	}

	if len(file.Fields) > 0 {
		fields, err := domain.ParseFields(file.Fields)
		if err != nil {
			return nil, invalid(err, "fields")
		}
		cfg.Fields = fields
	}

	for key, text := range file.Rules {
		if key == defaultRulesKey {
			cfg.DefaultRules = strings.TrimSpace(text)
			continue
		}
		f, err := domain.ParseField(key)
		if err != nil {
			return nil, invalid(err, "rules."+key)
		}
		cfg.Rules[f] = strings.TrimSpace(text)
	}

	cfg.ProductContext = strings.TrimSpace(file.Context)
	cfg.RetryDegraded = file.RetryDegraded

	if file.Scoring.Threshold != nil {
		cfg.Scoring.Threshold = *file.Scoring.Threshold
	}
	rounding, err := domain.ParseRounding(file.Scoring.Rounding)
	if err != nil {
		return nil, invalid(err, "scoring.rounding")
	}
	cfg.Scoring.Rounding = rounding
	if err := cfg.Scoring.Validate(); err != nil {
		return nil, invalid(err, "scoring")
	}

	if err := resolveStore(root, file.Store, cfg); err != nil {
		return nil, err
	}
	if err := resolveValidator(file.Validator, cfg); err != nil {
		return nil, err
	}

	switch {
	case file.Parallelism < 0:
		return nil, zerr.With(domain.ErrConfigInvalid, "parallelism", file.Parallelism)
	case file.Parallelism > 0:
		cfg.Parallelism = file.Parallelism
	}

	return cfg, nil
}

func resolveStore(root string, dto StoreDTO, cfg *domain.Config) error {
	switch domain.StoreDriver(dto.Driver) {
	case "", domain.StoreJSON:
		cfg.Store.Driver = domain.StoreJSON
		cfg.Store.Path = filepath.Join(root, domain.DefaultHistoryPath())
	case domain.StoreSQLite:
		cfg.Store.Driver = domain.StoreSQLite
		cfg.Store.Path = filepath.Join(root, domain.DefaultHistoryDBPath())
	default:
		return zerr.With(domain.ErrConfigInvalid, "store.driver", dto.Driver)
	}

	if dto.Path != "" {
		cfg.Store.Path = resolvePath(root, dto.Path)
	}
	return nil
}

func resolveValidator(dto ValidatorDTO, cfg *domain.Config) error {
	if dto.Endpoint != "" {
		cfg.Validator.Endpoint = strings.TrimRight(dto.Endpoint, "/")
	}
	if dto.Model != "" {
		cfg.Validator.Model = dto.Model
	}
	if dto.APIKeyEnv != "" {
		cfg.Validator.APIKeyEnv = dto.APIKeyEnv
	}
	if dto.Timeout != "" {
		timeout, err := time.ParseDuration(dto.Timeout)
		if err != nil {
			return invalid(err, "validator.timeout")
		}
		if timeout <= 0 {
			return zerr.With(domain.ErrConfigInvalid, "validator.timeout", dto.Timeout)
		}
		cfg.Validator.Timeout = timeout
	}
	return nil
}

func invalid(err error, key string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrConfigInvalid.Error()), "key", key)
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(root, path))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
// Unknown keys are rejected and an empty file leaves target untouched.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	decoder := yaml.NewDecoder(bytes.NewReader(configFile))
	decoder.KnownFields(true)
	if parseErr := decoder.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
