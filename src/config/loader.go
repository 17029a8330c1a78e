package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// envVarPattern matches ${VAR} or ${VAR:-default}
var envVarPattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(?::-([^}]*))?\}`)

// Loader handles configuration loading from YAML files
type Loader struct{}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load loads configuration from a YAML file with environment variable substitution.
// Environment variables can be referenced in the YAML using:
//   - ${VAR_NAME} - substitutes the value of VAR_NAME, empty string if not set
//   - ${VAR_NAME:-default} - substitutes VAR_NAME or "default" if not set
func (l *Loader) Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	filePath := l.resolveConfigPath(configPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := l.Parse(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Parse expands environment references in data and decodes it over cfg,
// then validates the result.
func (l *Loader) Parse(data []byte, cfg *Config) error {
	expanded := l.expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

func (l *Loader) resolveConfigPath(configPath string) string {
	if configPath != "" {
		return configPath
	}

	defaults := []string{
		"config.yaml",
		"config/config.yaml",
		filepath.Join(os.Getenv("HOME"), ".di-quality", "config.yaml"),
	}

	for _, path := range defaults {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

func (l *Loader) expandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		defaultVal := ""
		if len(submatches) >= 3 {
			defaultVal = submatches[2]
		}

		if val, exists := os.LookupEnv(varName); exists {
			return val
		}

		return defaultVal
	})
}

// Validate rejects option values the analysis does not understand
func (c *Config) Validate() error {
	if len(c.Analysis.Variants) == 0 {
		return fmt.Errorf("analysis.variants must not be empty")
	}
	for _, v := range c.Analysis.Variants {
		if !slices.Contains([]string{"mean", "outlier"}, v) {
			return fmt.Errorf("unknown analysis variant: %q", v)
		}
	}
	if !slices.Contains([]string{"auto", "class_names", "field_method"}, c.Analysis.DIScheme) {
		return fmt.Errorf("unknown di_scheme: %q", c.Analysis.DIScheme)
	}
	if !slices.Contains([]string{"inclusive", "exclusive"}, c.Analysis.OutlierBounds) {
		return fmt.Errorf("unknown outlier_bounds: %q", c.Analysis.OutlierBounds)
	}
	if !slices.Contains([]string{"inverted", "violations"}, c.Analysis.MaintainabilityPolarity) {
		return fmt.Errorf("unknown maintainability_polarity: %q", c.Analysis.MaintainabilityPolarity)
	}
	if c.Ingestion.Sentinel == "" || c.Ingestion.FieldTypesTag == "" || c.Ingestion.MethodParamsTag == "" {
		return fmt.Errorf("ingestion markers must not be empty")
	}
	if c.Concurrency.MaxParallelProjects < 1 {
		c.Concurrency.MaxParallelProjects = 1
	}
	return nil
}
