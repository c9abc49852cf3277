package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"boilerInspector/internal/backup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	inputFile        string
	restoreFormat    string
	skipConfirmation bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore inspections from a backup file",
	Long: `Restore inspections from a JSON or CSV backup file.

Records whose id is already in the history are skipped, so restoring the
same backup twice is harmless. A JSON export of the browser version's
"inspections" storage entry is accepted as well.`,
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input backup file to restore (required)")
	restoreCmd.Flags().StringVarP(&restoreFormat, "format", "f", "", "Backup format: json or csv (auto-detected if not specified)")
	restoreCmd.Flags().BoolVar(&skipConfirmation, "yes", false, "Skip confirmation prompts")

	restoreCmd.MarkFlagRequired("input")
}

func runRestore(cmd *cobra.Command, args []string) error {
	if inputFile == "" {
		return fmt.Errorf("input file is required")
	}

	format := restoreFormat
	if format == "" {
		format = backup.DetectFormat(inputFile)
		if format == "" {
			return fmt.Errorf("cannot auto-detect format of %s. Please specify --format", inputFile)
		}
	}
	if format != backup.FormatJSON && format != backup.FormatCSV {
		return fmt.Errorf("invalid format: %s. Use 'json' or 'csv'", format)
	}

	if err := backup.ValidateBackupFile(inputFile, format); err != nil {
		return fmt.Errorf("backup file validation failed: %w", err)
	}

	records, err := backup.ReadBackup(inputFile, format)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	out := cmd.OutOrStdout()
	if !skipConfirmation {
		fmt.Fprintln(out, "About to restore:")
		fmt.Fprintf(out, "  Source file: %s\n", inputFile)
		fmt.Fprintf(out, "  Records: %d\n", len(records))
		fmt.Fprintf(out, "  Target store: %s\n", cfg.Store)
		fmt.Fprintf(out, "  Format: %s\n", format)

		if !confirmAction(cmd.InOrStdin(), out, "Do you want to continue?") {
			fmt.Fprintln(out, "Restore cancelled")
			return nil
		}
	}

	logger.Info("Starting restore", zap.String("file", inputFile), zap.Int("records", len(records)))
	result, err := backup.NewService(historyStore, logger).RestoreHistory(cmd.Context(), records)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Fprintf(out, "Restored %d of %d inspections (%d skipped, %d failed)\n",
		result.Restored, result.Total, result.Skipped, result.Failed)
	if result.Failed > 0 {
		return fmt.Errorf("%d inspections could not be restored", result.Failed)
	}
	return nil
}

func confirmAction(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s (y/N): ", message)
	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
