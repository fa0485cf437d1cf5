package logger

import (
	"fmt"
	"path/filepath"

	"github.com/edgeforge/wictool/internal/common/fsutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger instance. It starts as a no-op so packages can
// log safely before Init runs.
var Log *zap.SugaredLogger = zap.NewNop().Sugar()

// Config contains configuration for the logger
type Config struct {
	Debug  bool   // Enable debug level logging
	Format string // "json" or "human"
	File   string // Path to log file (optional)
}

// Init initializes the global logger with the provided configuration
func Init(config Config) error {
	var zapConfig zap.Config

	// Configure log format
	if config.Format == "json" {
		zapConfig = zap.NewProductionConfig() // JSON logs for structured logging
	} else {
		zapConfig = zap.NewDevelopmentConfig()                                 // Human-readable logs with color
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder // Enables colored log levels
	}

	// Configure output paths
	outputPaths := []string{"stderr"}
	if config.File != "" {
		// Ensure log directory exists
		logDir := filepath.Dir(config.File)
		if err := fsutil.CreateDirIfNotExists(logDir); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		outputPaths = append(outputPaths, config.File)
	}
	zapConfig.OutputPaths = outputPaths

	// Set log level dynamically
	if config.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// Build logger
	logger, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	Log = logger.Sugar()
	return nil
}

// Sync flushes any buffered log entries
func Sync() {
	_ = Log.Sync()
}
