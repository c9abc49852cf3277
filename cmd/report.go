package cmd

import (
	"fmt"
	"time"

	"boilerInspector/internal/report"

	"github.com/spf13/cobra"
)

var reportStdout bool

var reportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "Regenerate the report of a saved inspection",
	Args:  cobra.ExactArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportStdout, "stdout", false, "Print the report instead of writing a file")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportStdout {
		rec, err := service.Find(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("%w: %s", err, args[0])
		}
		fmt.Fprint(cmd.OutOrStdout(), report.Generate(rec, time.Now()))
		return nil
	}

	path, err := service.Redeliver(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to regenerate report for %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}
