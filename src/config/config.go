package config

import "time"

// Config is the root configuration structure
type Config struct {
	Agent       AgentConfig       `yaml:"agent"`
	Analyzer    AnalyzerConfig    `yaml:"analyzer"`
	Ingestion   IngestionConfig   `yaml:"ingestion"`
	Analysis    AnalysisConfig    `yaml:"analysis"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Cache       CacheConfig       `yaml:"cache"`
	Exclusions  ExclusionsConfig  `yaml:"exclusions"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// AgentConfig contains tool metadata
type AgentConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// AnalyzerConfig describes how the external ckjm analyzer is invoked
type AnalyzerConfig struct {
	Java      string        `yaml:"java"`
	Jar       string        `yaml:"jar"`
	Timeout   time.Duration `yaml:"timeout"`
	ClassGlob string        `yaml:"class_glob"`
	BeanGlob  string        `yaml:"bean_glob"`
}

// IngestionConfig contains the markers recognised in analyzer output
type IngestionConfig struct {
	Sentinel        string `yaml:"sentinel"`
	FieldTypesTag   string `yaml:"field_types_tag"`
	MethodParamsTag string `yaml:"method_params_tag"`
}

// AnalysisConfig selects the index variants and their conventions
type AnalysisConfig struct {
	Variants                []string `yaml:"variants"`                 // mean, outlier
	DIScheme                string   `yaml:"di_scheme"`                // auto, class_names, field_method
	OutlierBounds           string   `yaml:"outlier_bounds"`           // inclusive, exclusive
	MaintainabilityPolarity string   `yaml:"maintainability_polarity"` // inverted, violations
	Strict                  bool     `yaml:"strict"`
	FailFast                bool     `yaml:"fail_fast"`
}

// ConcurrencyConfig contains concurrency settings
type ConcurrencyConfig struct {
	MaxParallelProjects int `yaml:"max_parallel_projects"`
}

// CacheConfig contains analyzer output caching settings
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"max_entries"`
}

// ExclusionsConfig contains exclusion patterns
type ExclusionsConfig struct {
	FilePatterns  []string `yaml:"file_patterns"`
	Files         []string `yaml:"files"`
	ClassPatterns []string `yaml:"class_patterns"`
}

// OutputConfig contains output settings
type OutputConfig struct {
	Formats              []string `yaml:"formats"`
	OutputDir            string   `yaml:"output_dir"`
	FileName             string   `yaml:"file_name"`
	IncludeProjectColumn bool     `yaml:"include_project_column"`
	IncludeSubIndices    bool     `yaml:"include_sub_indices"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level            string `yaml:"level"`
	Format           string `yaml:"format"` // text, json
	File             string `yaml:"file"`
	IncludeTimestamp bool   `yaml:"include_timestamp"`
	IncludeCaller    bool   `yaml:"include_caller"`
}
