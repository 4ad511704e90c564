package cmd

import (
	"fmt"
	"os"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/RyanBlaney/latency-benchmark-common/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paulkarayan/skronk-and-skreigh/configs"
	"github.com/paulkarayan/skronk-and-skreigh/internal/analysis"
	"github.com/paulkarayan/skronk-and-skreigh/internal/results"
	"github.com/paulkarayan/skronk-and-skreigh/internal/tempo"
)

var (
	// Analyze command flags
	analyzeTolerance   float64
	analyzeThreshold   float64
	analyzeConcurrency int
	analyzeReportFile  string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] results-file...",
	Short: "Analyze multi-method BPM detection results",
	Long: `Analyze the combined results JSON produced by the BPM detection stage.

This command ingests every (file, method, bpm) triple from the given
results files into a frozen corpus, then derives:
- Per-method statistics (average BPM, range, coverage)
- High-variance files where the methods disagree beyond the threshold
- The pairwise method agreement matrix, octave ambiguity tolerated

Examples:
  # Analyze one combined results file
  skronk analyze bpm-results/session_all_methods.json

  # Merge several runs into one corpus
  skronk analyze run1_all_methods.json run2_all_methods.json

  # Tighten the agreement window and write the report to a file
  skronk analyze --tolerance 3 --report-file summary.txt results.json

  # Machine-readable summary
  skronk analyze --output json results.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Float64Var(&analyzeTolerance, "tolerance", tempo.DefaultTolerance,
		"agreement tolerance in BPM")
	analyzeCmd.Flags().Float64Var(&analyzeThreshold, "variance-threshold", analysis.DefaultVarianceThreshold,
		"spread above which a file is flagged as high variance")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "max-concurrency", 4,
		"maximum concurrent per-file computations")
	analyzeCmd.Flags().StringVar(&analyzeReportFile, "report-file", "",
		"write the report to this file instead of stdout")

	viper.BindPFlag("analysis.tolerance", analyzeCmd.Flags().Lookup("tolerance"))
	viper.BindPFlag("analysis.variance_threshold", analyzeCmd.Flags().Lookup("variance-threshold"))
	viper.BindPFlag("analysis.max_concurrent_files", analyzeCmd.Flags().Lookup("max-concurrency"))
	viper.BindPFlag("report.file", analyzeCmd.Flags().Lookup("report-file"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	config, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := configs.ValidateConfig(config); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewDefaultLogger()

	// Ingest every results file into one corpus, then freeze it
	store := tempo.NewStore()
	for _, path := range args {
		estimates, err := results.Load(path)
		if err != nil {
			return err
		}
		for _, est := range estimates {
			if err := store.Ingest(est); err != nil {
				return fmt.Errorf("ingest failed for %s: %w", path, err)
			}
		}
		logger.Debug("Loaded results file", logging.Fields{
			"path":      path,
			"estimates": len(estimates),
		})
	}
	if err := store.Freeze(); err != nil {
		return err
	}

	analyzer := analysis.NewAnalyzer(store, &analysis.Config{
		Tolerance:          config.Analysis.Tolerance,
		VarianceThreshold:  config.Analysis.VarianceThreshold,
		MaxConcurrentFiles: config.Analysis.MaxConcurrentFiles,
		Logger:             logger,
	})

	summary, err := analyzer.Run(cmd.Context())
	if err != nil {
		return err
	}

	return outputSummary(config, summary)
}

// outputSummary renders the summary in the configured format. The text
// format is the canonical report artifact; json/yaml/csv carry the same
// derived data for machine consumers.
func outputSummary(config *configs.Config, summary *analysis.Summary) error {
	if config.OutputFormat == "text" {
		return writeReport(config, summary)
	}

	var formatter output.Formatter
	switch config.OutputFormat {
	case "yaml":
		formatter = &output.YAMLFormatter{}
	case "csv":
		formatter = &output.CSVFormatter{}
	default:
		formatter = &output.JSONFormatter{}
	}

	formattedData, err := formatter.Format(summary, true)
	if err != nil {
		return fmt.Errorf("failed to format summary: %w", err)
	}

	if config.Report.File != "" {
		return os.WriteFile(config.Report.File, formattedData, 0644)
	}
	_, err = os.Stdout.Write(formattedData)
	return err
}

// writeReport emits the deterministic text report, plus the console
// digest when the report itself goes to a file.
func writeReport(config *configs.Config, summary *analysis.Summary) error {
	report := analysis.RenderReport(summary)

	if config.Report.File == "" {
		_, err := os.Stdout.WriteString(report)
		return err
	}

	if err := os.WriteFile(config.Report.File, []byte(report), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Summary report saved to %s\n", config.Report.File)

	if config.Report.ShowDigest {
		_, err := os.Stdout.WriteString(analysis.RenderDigest(summary, config.Report.TopVariance))
		return err
	}
	return nil
}
