package configs

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose" yaml:"verbose"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`

	// Analysis policy
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`

	// Report output
	Report ReportConfig `mapstructure:"report" yaml:"report"`
}

// AnalysisConfig contains the numeric policy for one analysis run
type AnalysisConfig struct {
	// Tolerance is the comparator's agreement window in BPM
	Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance"`

	// VarianceThreshold is the cross-method spread above which a file
	// is flagged as high variance
	VarianceThreshold float64 `mapstructure:"variance_threshold" yaml:"variance_threshold"`

	// MaxConcurrentFiles bounds the per-file analysis fan-out
	MaxConcurrentFiles int `mapstructure:"max_concurrent_files" yaml:"max_concurrent_files"`
}

// ReportConfig contains report output settings
type ReportConfig struct {
	// File receives the text report; empty means stdout
	File string `mapstructure:"file" yaml:"file"`

	// ShowDigest prints the short console digest after a report written
	// to file
	ShowDigest bool `mapstructure:"show_digest" yaml:"show_digest"`

	// TopVariance is the number of files listed in the digest
	TopVariance int `mapstructure:"top_variance" yaml:"top_variance"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Analysis.Tolerance <= 0 {
		return fmt.Errorf("analysis tolerance must be positive")
	}

	if config.Analysis.VarianceThreshold <= 0 {
		return fmt.Errorf("variance threshold must be positive")
	}

	if config.Analysis.MaxConcurrentFiles <= 0 {
		return fmt.Errorf("max concurrent files must be positive")
	}

	if config.Report.TopVariance < 0 {
		return fmt.Errorf("top variance count cannot be negative")
	}

	switch config.OutputFormat {
	case "text", "json", "yaml", "csv":
	default:
		return fmt.Errorf("unsupported output format: %s", config.OutputFormat)
	}

	return nil
}
