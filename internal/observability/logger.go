// Package observability provides the process-wide zap loggers.
//
// Loggers default to no-ops so packages can log unconditionally; Init
// replaces them once configuration is loaded.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLILogger is used by cobra commands. Output is console-encoded for
// human consumption.
var CLILogger = zap.NewNop()

// ServerLogger is used by the HTTP server and handlers. Output is
// JSON-encoded for log aggregation.
var ServerLogger = zap.NewNop()

// Init builds the global loggers.
//
// level is a zap level string (debug, info, warn, error). format is
// "json" or "console"; it applies to ServerLogger only, CLILogger is
// always console-encoded.
func Init(level, format string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cliCfg := zap.NewDevelopmentConfig()
	cliCfg.Level = zap.NewAtomicLevelAt(lvl)
	cliCfg.DisableStacktrace = true
	cli, err := cliCfg.Build()
	if err != nil {
		return fmt.Errorf("build cli logger: %w", err)
	}

	srvCfg := zap.NewProductionConfig()
	srvCfg.Level = zap.NewAtomicLevelAt(lvl)
	if format == "console" {
		srvCfg.Encoding = "console"
	}
	srv, err := srvCfg.Build()
	if err != nil {
		return fmt.Errorf("build server logger: %w", err)
	}

	CLILogger = cli
	ServerLogger = srv
	return nil
}

// Sync flushes both loggers. Errors are ignored; stderr sync failures
// on shutdown are not actionable.
func Sync() {
	_ = CLILogger.Sync()
	_ = ServerLogger.Sync()
}
