package configs

import (
	"github.com/spf13/viper"

	"github.com/paulkarayan/skronk-and-skreigh/internal/analysis"
	"github.com/paulkarayan/skronk-and-skreigh/internal/tempo"
)

// SetDefaults sets default configuration values for all components
func SetDefaults(v *viper.Viper) {
	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "text")
	}

	// Analysis defaults. The tolerance and variance threshold are the
	// empirical values observed across traditional-music corpora; both
	// stay configurable.
	if !v.IsSet("analysis.tolerance") {
		v.Set("analysis.tolerance", tempo.DefaultTolerance)
	}
	if !v.IsSet("analysis.variance_threshold") {
		v.Set("analysis.variance_threshold", analysis.DefaultVarianceThreshold)
	}
	if !v.IsSet("analysis.max_concurrent_files") {
		v.Set("analysis.max_concurrent_files", 4)
	}

	// Report defaults
	if !v.IsSet("report.file") {
		v.Set("report.file", "")
	}
	if !v.IsSet("report.show_digest") {
		v.Set("report.show_digest", true)
	}
	if !v.IsSet("report.top_variance") {
		v.Set("report.top_variance", 5)
	}
}

// ExampleConfig returns a fully populated configuration suitable for
// writing out as a starting config file.
func ExampleConfig() *Config {
	return &Config{
		Verbose:      false,
		LogLevel:     "info",
		OutputFormat: "text",
		Analysis: AnalysisConfig{
			Tolerance:          tempo.DefaultTolerance,
			VarianceThreshold:  analysis.DefaultVarianceThreshold,
			MaxConcurrentFiles: 4,
		},
		Report: ReportConfig{
			ShowDigest:  true,
			TopVariance: 5,
		},
	}
}
