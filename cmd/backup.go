package cmd

import (
	"fmt"

	"boilerInspector/internal/backup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputDir    string
	backupFormat string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up the inspection history",
	Long:  "Back up the inspection history to a timestamped JSON or CSV file",
	RunE:  runBackup,
}

func init() {
	backupCmd.Flags().StringVarP(&outputDir, "output", "o", "./backups", "Output directory for backup files")
	backupCmd.Flags().StringVarP(&backupFormat, "format", "f", backup.FormatJSON, "Backup format: json or csv")
}

func runBackup(cmd *cobra.Command, args []string) error {
	if backupFormat != backup.FormatJSON && backupFormat != backup.FormatCSV {
		return fmt.Errorf("invalid format: %s. Use 'json' or 'csv'", backupFormat)
	}

	backupService := backup.NewService(historyStore, logger)

	logger.Info("Starting backup", zap.String("store", cfg.Store), zap.String("format", backupFormat))
	path, count, err := backupService.BackupHistory(cmd.Context(), outputDir, backupFormat)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d inspections to %s\n", count, path)
	return nil
}
