// Package logger configures structured logging for cat2verilog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"
)

var defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

type Config struct {
	Level  Level
	Format string // "text" or "json"
	Output io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:  LevelWarn,
		Format: "text",
		Output: os.Stderr,
	}
}

// Init replaces the package logger. Until it is called nothing is logged.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: toSlogLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	defaultLogger = slog.New(handler)
}

func toSlogLevel(level Level) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	}
	return slog.LevelInfo
}

func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }
func Info(msg string, args ...any)  { defaultLogger.Info(msg, args...) }
func Warn(msg string, args ...any)  { defaultLogger.Warn(msg, args...) }


func LogPhase(file, phase string) {
	Debug("starting phase", "file", file, "phase", phase)
}

func LogPhaseComplete(file, phase string, args ...any) {
	Debug("completed phase", append([]any{"file", file, "phase", phase}, args...)...)
}

// LogFileDone records the outcome of one compilation. The diagnostic for a
// failure is printed by the driver itself.
func LogFileDone(file string, ok bool, d time.Duration) {
	if ok {
		Info("compiled", "file", file, "duration", d)
	} else {
		Info("compilation failed", "file", file, "duration", d)
	}
}

func LogWarning(file string, line, col int, msg string) {
	Warn("lint", "file", file, "line", line, "col", col, "message", msg)
}
