// Package logging provides config-driven categorized file logging.
// Each category writes to its own dated file under the configured log
// directory. When debug mode is off, every logger is a silent no-op so
// library callers pay nothing for instrumentation they did not ask for.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category names a logging subsystem.
type Category string

const (
	CategoryBoot      Category = "boot"      // startup and configuration
	CategoryAPI       Category = "api"       // model API calls
	CategoryPipeline  Category = "pipeline"  // pass sequencing and halts
	CategoryPrompt    Category = "prompt"    // prompt construction
	CategoryRetrieval Category = "retrieval" // artifact fetching
	CategoryBatch     Category = "batch"     // concurrent batch runs
)

// Config controls the logging subsystem. Mirrors the application
// config's logging block to avoid a circular import.
type Config struct {
	DebugMode  bool
	Dir        string
	Level      string          // debug, info, warn, error
	Categories map[string]bool // nil means all categories enabled
}

var (
	mu      sync.RWMutex
	cfg     Config
	level   zapcore.Level
	loggers = make(map[Category]*zap.SugaredLogger)
	nop     = zap.NewNop().Sugar()
)

// Initialize configures the logging subsystem. Call once at startup.
// A disabled config is not an error; all loggers become no-ops.
func Initialize(c Config) error {
	mu.Lock()
	defer mu.Unlock()

	cfg = c
	loggers = make(map[Category]*zap.SugaredLogger)

	switch c.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn", "warning":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	if !c.DebugMode {
		return nil
	}
	if c.Dir == "" {
		return fmt.Errorf("log directory required when debug mode is enabled")
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

// enabled reports whether a category should produce output.
func enabled(category Category) bool {
	if !cfg.DebugMode {
		return false
	}
	if cfg.Categories == nil {
		return true
	}
	on, exists := cfg.Categories[string(category)]
	if !exists {
		return true
	}
	return on
}

// Get returns (or creates) the logger for a category. Returns a no-op
// logger when the category is disabled.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	if !enabled(category) {
		mu.RUnlock()
		return nop
	}
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	// Dated file names keep rotation a matter of deleting old files.
	date := time.Now().Format("2006-01-02")
	path := filepath.Join(cfg.Dir, fmt.Sprintf("%s_%s.log", date, category))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] warning: could not open log file %s: %v\n", path, err)
		return nop
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(file),
		level,
	)
	l := zap.New(core).Sugar().With("category", string(category))
	loggers[category] = l
	return l
}

// CloseAll flushes and drops all open loggers. Call at shutdown.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	for _, l := range loggers {
		_ = l.Sync()
	}
	loggers = make(map[Category]*zap.SugaredLogger)
}

// Convenience helpers for the hot categories.

// API logs to the api category at info level.
func API(format string, args ...interface{}) {
	Get(CategoryAPI).Infof(format, args...)
}

// Pipeline logs to the pipeline category at info level.
func Pipeline(format string, args ...interface{}) {
	Get(CategoryPipeline).Infof(format, args...)
}

// PipelineDebug logs to the pipeline category at debug level.
func PipelineDebug(format string, args ...interface{}) {
	Get(CategoryPipeline).Debugf(format, args...)
}

// Retrieval logs to the retrieval category at info level.
func Retrieval(format string, args ...interface{}) {
	Get(CategoryRetrieval).Infof(format, args...)
}

// Batch logs to the batch category at info level.
func Batch(format string, args ...interface{}) {
	Get(CategoryBatch).Infof(format, args...)
}
