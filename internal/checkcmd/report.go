package checkcmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/checkflac/checkflac/internal/report"
)

// NewReportCmd creates the report command, which renders a saved YAML
// report.
func NewReportCmd() *cobra.Command {
	var resultsPath string
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a saved validation report",
		Example: `  # Human-readable report
  checkflac report --results findings.yaml

  # Machine-readable report
  checkflac report --results findings.yaml --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeReport(resultsPath, format)
		},
	}

	cmd.Flags().StringVar(&resultsPath, "results", "", "Path to a report written by 'check --report' (required)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format (text or json)")
	_ = cmd.MarkFlagRequired("results")

	return cmd
}

func executeReport(resultsPath, format string) error {
	rpt, err := report.Load(resultsPath)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	switch format {
	case "text":
		return printTextReport(rpt)
	case "json":
		return printJSONReport(rpt)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printTextReport(rpt *report.Report) error {
	fmt.Println("========================================")
	fmt.Println("FLAC Release Validation Report")
	fmt.Println("========================================")
	fmt.Printf("Run:        %s\n", rpt.Config.Timestamp)
	if rpt.Config.StopLevel != "none" && rpt.Config.StopLevel != "" {
		fmt.Printf("Stop level: %s\n", rpt.Config.StopLevel)
	}

	for i, root := range rpt.Roots {
		fmt.Printf("\n[%d] %s\n", i+1, root.Root)

		if root.Error != "" {
			fmt.Printf("  Error: %s\n", root.Error)
			continue
		}
		if len(root.Findings) == 0 {
			fmt.Println("  No findings")
			continue
		}
		for _, f := range root.Findings {
			fmt.Printf("  [%s/%s] %s\n", f.Level, f.Severity, f.Message)
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Albums:   %d\n", rpt.Summary.Roots)
	fmt.Printf("Failures: %d\n", rpt.Summary.Failures)
	fmt.Printf("Problems: %d\n", rpt.Summary.Problems)
	fmt.Printf("Warnings: %d\n", rpt.Summary.Warnings)
	fmt.Println("========================================")
	return nil
}

func printJSONReport(rpt *report.Report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rpt)
}
