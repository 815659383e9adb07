package cmd

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/printdesk/jobtrack/internal/config"
	"github.com/printdesk/jobtrack/internal/observability"
	"github.com/printdesk/jobtrack/internal/sheets"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks",
	Long: `Run diagnostic checks on configuration and spreadsheet connectivity.

Examples:
  jobtrack doctor            # Full check including backend reachability
  jobtrack doctor --offline  # Skip the backend reachability check`,
	RunE: runDoctor,
}

var doctorOffline bool

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorOffline, "offline", false, "Skip checks that contact the backend")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := observability.Init("info", "console"); err != nil {
		return exitError(foundry.ExitInvalidArgument, "Invalid logging configuration", err)
	}

	observability.CLILogger.Info("=== jobtrack doctor ===")
	observability.CLILogger.Info("")
	observability.CLILogger.Info("Running diagnostic checks...")
	observability.CLILogger.Info("")

	allChecks := true
	checkNum := 1
	totalChecks := 4
	if doctorOffline {
		totalChecks = 3
	}

	// Check 1: environment
	observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking environment... ✅ %s/%s (%s)",
		checkNum, totalChecks, runtime.GOOS, runtime.GOARCH, runtime.Version()))
	checkNum++

	// Check 2: configuration loads
	cfg, err := config.Load(ctx)
	if err != nil {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking configuration... ❌ %v", checkNum, totalChecks, err))
		return exitError(foundry.ExitInvalidArgument, "Configuration failed to load", err)
	}
	observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking configuration... ✅ sheet %q range %q",
		checkNum, totalChecks, cfg.Sheets.SheetName, cfg.Sheets.ReadRange))
	checkNum++

	// Check 3: credentials parse
	backend, err := sheets.NewClient(cfg.Sheets)
	if err != nil {
		observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking credentials... ❌ %v", checkNum, totalChecks, err))
		return exitError(foundry.ExitInvalidArgument, "Spreadsheet credentials invalid", err)
	}
	observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking credentials... ✅ %s",
		checkNum, totalChecks, cfg.Sheets.ClientEmail))
	checkNum++

	// Check 4: backend reachable
	if !doctorOffline {
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = backend.Ping(pingCtx)
		cancel()
		if err != nil {
			observability.CLILogger.Error(fmt.Sprintf("[%d/%d] Checking spreadsheet... ❌ Cannot reach spreadsheet", checkNum, totalChecks),
				zap.Error(err))
			allChecks = false
		} else {
			observability.CLILogger.Info(fmt.Sprintf("[%d/%d] Checking spreadsheet... ✅ reachable", checkNum, totalChecks))
		}
	}

	observability.CLILogger.Info("")
	if allChecks {
		observability.CLILogger.Info("✅ All checks passed! Your jobtrack installation is healthy.")
	} else {
		observability.CLILogger.Warn("⚠️  Some checks failed. Review the output above for details.")
	}
	observability.CLILogger.Info("")
	observability.CLILogger.Info("=== End Diagnostics ===")

	if !allChecks {
		return exitError(foundry.ExitExternalServiceUnavailable, "Diagnostics failed", fmt.Errorf("spreadsheet unreachable"))
	}
	return nil
}
