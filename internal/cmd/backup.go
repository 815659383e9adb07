package cmd

import (
	"time"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/printdesk/jobtrack/internal/backup"
	"github.com/printdesk/jobtrack/internal/config"
	"github.com/printdesk/jobtrack/internal/jobs"
	"github.com/printdesk/jobtrack/internal/observability"
	"github.com/printdesk/jobtrack/internal/sheets"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a CSV snapshot of the job sheet to S3",
	Long: `Read the full job sheet and upload it as a timestamped CSV object.

The destination bucket comes from configuration (backup.bucket or
JOBTRACK_BACKUP_BUCKET); --bucket overrides it.

Example:
  jobtrack backup
  jobtrack backup --bucket print-shop-backups`,
	RunE: runBackup,
}

var backupBucket string

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringVar(&backupBucket, "bucket", "", "Override destination bucket")
}

func runBackup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid configuration", err)
	}
	if backupBucket != "" {
		cfg.Backup.Bucket = backupBucket
	}

	if err := observability.Init(cfg.Logging.Level, "console"); err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid logging configuration", err)
	}
	defer observability.Sync()

	backend, err := sheets.NewClient(cfg.Sheets)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid spreadsheet configuration", err)
	}

	uploader, err := backup.NewUploader(ctx, cfg.Backup)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid backup configuration", err)
	}

	values, err := backend.Read(ctx)
	if err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Failed to read spreadsheet", err)
	}

	// Row 0 is the header row.
	var dataRows [][]interface{}
	if len(values) > 1 {
		dataRows = values[1:]
	}

	records, err := jobs.FromRows(dataRows)
	if err != nil {
		return exitError(foundry.ExitInvalidArgument, "Spreadsheet rows are malformed", err)
	}

	key, err := uploader.Snapshot(ctx, records, time.Now())
	if err != nil {
		return exitError(foundry.ExitExternalServiceUnavailable, "Failed to upload snapshot", err)
	}

	observability.CLILogger.Info("snapshot uploaded",
		zap.String("bucket", cfg.Backup.Bucket),
		zap.String("key", key),
		zap.Int("records", len(records)))
	return nil
}
