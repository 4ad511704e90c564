package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/paulkarayan/skronk-and-skreigh/configs"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display the effective configuration",
	Long: `Load the configuration and display all values in a structured format
to verify that config file, environment, and flags are being merged correctly.

Examples:
  # Show effective configuration
  skronk config

  # Show configuration from a specific file
  skronk --config /path/to/skronk.yaml config`,
	RunE: runConfigShow,
}

// configInitCmd writes a starting config file
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fmt.Println("SKRONK CONFIGURATION")
	fmt.Println(strings.Repeat("=", 80))

	config, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	printSection("APPLICATION SETTINGS")
	printKeyValue("Verbose", fmt.Sprintf("%t", config.Verbose))
	printKeyValue("Log Level", config.LogLevel)
	printKeyValue("Output Format", config.OutputFormat)

	printSection("ANALYSIS CONFIGURATION")
	printKeyValue("Tolerance", fmt.Sprintf("%.1f BPM", config.Analysis.Tolerance))
	printKeyValue("Variance Threshold", fmt.Sprintf("%.1f BPM", config.Analysis.VarianceThreshold))
	printKeyValue("Max Concurrent Files", fmt.Sprintf("%d", config.Analysis.MaxConcurrentFiles))

	printSection("REPORT CONFIGURATION")
	printKeyValue("Report File", config.Report.File)
	printKeyValue("Show Digest", fmt.Sprintf("%t", config.Report.ShowDigest))
	printKeyValue("Top Variance Entries", fmt.Sprintf("%d", config.Report.TopVariance))

	fmt.Println()
	if err := configs.ValidateConfig(config); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	fmt.Println("Configuration is valid.")

	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "skronk.yaml"
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing file %s", path)
	}

	data, err := yaml.Marshal(configs.ExampleConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Wrote example configuration to %s\n", path)
	return nil
}

func printSection(title string) {
	fmt.Printf("\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func printKeyValue(key, value string) {
	if value == "" {
		value = "(not set)"
	}
	fmt.Printf("  %-24s %s\n", key+":", value)
}
