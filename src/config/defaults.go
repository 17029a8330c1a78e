package config

import "time"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:        "di-quality",
			Version:     "1.0.0",
			Description: "Dependency-injection aware quality indices from ckjm output",
		},
		Analyzer: AnalyzerConfig{
			Java:      "java",
			Jar:       "ckjm.jar",
			Timeout:   2 * time.Minute,
			ClassGlob: "*.class",
			BeanGlob:  "*.xml",
		},
		Ingestion: IngestionConfig{
			Sentinel:        "~",
			FieldTypesTag:   "FIELD_TYPES",
			MethodParamsTag: "METHOD_PARAMS",
		},
		Analysis: AnalysisConfig{
			Variants:                []string{"mean"},
			DIScheme:                "auto",
			OutlierBounds:           "inclusive",
			MaintainabilityPolarity: "inverted",
			Strict:                  false,
			FailFast:                false,
		},
		Concurrency: ConcurrencyConfig{
			MaxParallelProjects: 4,
		},
		Cache: CacheConfig{
			Enabled:    true,
			MaxEntries: 64,
		},
		Exclusions: ExclusionsConfig{
			FilePatterns:  []string{},
			ClassPatterns: []string{},
		},
		Output: OutputConfig{
			Formats:              []string{"csv"},
			OutputDir:            ".",
			FileName:             "metrics_output",
			IncludeProjectColumn: false,
			IncludeSubIndices:    true,
		},
		Logging: LoggingConfig{
			Level:            "info",
			Format:           "text",
			IncludeTimestamp: true,
			IncludeCaller:    false,
		},
	}
}
