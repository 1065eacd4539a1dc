package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Log is the global logger, initialized by Initialize. It defaults to a nop
// logger so packages can log unconditionally.
var Log *zap.Logger = zap.NewNop()

// retentionDays is how long daily log files are kept before the startup
// sweep removes them.
const retentionDays = 30

// Initialize configures the global logger.
// In development it logs to stderr in console format; otherwise it writes
// JSON to a daily file under dir (one file per day, old files swept).
func Initialize(level, env, dir string) error {
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	var config zap.Config

	if env == "development" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	config.Level = logLevel

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		sweepOldLogs(dir, retentionDays)

		name := filepath.Join(dir, "spedman_"+time.Now().Format("2006-01-02")+".log")
		config.OutputPaths = []string{name}
		config.ErrorOutputPaths = []string{name}
	}

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	Log = logger

	return nil
}

// sweepOldLogs removes daily log files older than keepDays. Errors are
// ignored: losing a stale log file is never worth failing startup.
func sweepOldLogs(dir string, keepDays int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	cutoff := time.Now().AddDate(0, 0, -keepDays)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, entry.Name()))
		}
	}
}

// Traced logs the start of a named operation and returns a closer that logs
// its duration and outcome. Meant to wrap every outbound API call:
//
//	done := logger.Traced("ebay.GetOrders")
//	...
//	done(err)
func Traced(op string) func(err error) {
	start := time.Now()
	Log.Debug("operation start", zap.String("op", op))

	return func(err error) {
		elapsed := time.Since(start)
		if err != nil {
			Log.Error("operation failed",
				zap.String("op", op),
				zap.Duration("elapsed", elapsed),
				zap.Error(err),
			)
			return
		}
		Log.Debug("operation done",
			zap.String("op", op),
			zap.Duration("elapsed", elapsed),
		)
	}
}
