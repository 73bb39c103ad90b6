// Package logging holds the process-wide zap logger. Until Init is called
// every call is a no-op, which keeps the terminal UI and tests quiet.
package logging

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
	file   *os.File // set by Init when logging to a file
)

// Init replaces the global logger. An empty path logs to stderr with a
// console encoder; otherwise JSON lines are appended to path. debug lowers
// the level from info to debug.
func Init(path string, debug bool) error {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	var (
		sink zapcore.WriteSyncer
		enc  zapcore.Encoder
		f    *os.File
	)
	if path == "" {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
		sink = zapcore.Lock(os.Stderr)
	} else {
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log %s: %w", path, err)
		}
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		sink = zapcore.AddSync(f)
	}

	if err := Close(); err != nil {
		if f != nil {
			f.Close()
		}
		return err
	}
	mu.Lock()
	logger = zap.New(zapcore.NewCore(enc, sink, level))
	file = f
	mu.Unlock()
	return nil
}

// Set installs l as the global logger.
func Set(l *zap.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// L returns the global logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field) { L().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field) { L().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { L().Error(msg, fields...) }

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync() { _ = L().Sync() }

// Close flushes the logger, closes the log file opened by Init, if any, and
// puts the no-op logger back.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	_ = logger.Sync()
	logger = zap.NewNop()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	if err != nil {
		return fmt.Errorf("close log: %w", err)
	}
	return nil
}
