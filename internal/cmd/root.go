// Package cmd implements the jobtrack CLI.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobtrack",
	Short: "Job tracking service backed by a spreadsheet",
	Long: `jobtrack serves the job entry and review UI for the print shop,
with a Google Sheets spreadsheet as the store of record.

Commands:
  serve    Run the HTTP server (API + browser UI)
  backup   Write a CSV snapshot of the job sheet to S3
  doctor   Run diagnostic checks
  version  Print build information`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// versionInfo carries build metadata injected at link time.
var versionInfo = struct {
	Version   string
	Commit    string
	BuildDate string
}{
	Version:   "dev",
	Commit:    "HEAD",
	BuildDate: "unknown",
}

// SetVersionInfo records build metadata for the version command and
// the /version endpoint.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

// Execute runs the CLI.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// exitError creates an error that will cause the CLI to exit with the
// given code.
func exitError(code int, message string, err error) error {
	return fmt.Errorf("%s: %w (exit code %d)", message, err, code)
}
