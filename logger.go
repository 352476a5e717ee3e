package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger writes structured records to a file. The terminal belongs to the
// renderer, so nothing is logged to stdout while the loop runs.
type Logger struct {
	file  io.WriteCloser
	slog  *slog.Logger
	mutex sync.Mutex
}

var globalLogger *Logger

// InitLogger opens path for appending. An empty path discards all records.
func InitLogger(path string, level slog.Level) error {
	var w io.WriteCloser = nopWriteCloser{io.Discard}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		w = f
	}

	globalLogger = NewLogger(w, level)
	globalLogger.Info("pointwave started")
	return nil
}

// NewLogger builds a logger over any writer.
func NewLogger(w io.WriteCloser, level slog.Level) *Logger {
	return &Logger{
		file: w,
		slog: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

// CloseLogger flushes the closing record and releases the file.
func CloseLogger() {
	if globalLogger != nil {
		globalLogger.Info("pointwave stopped")
		globalLogger.mutex.Lock()
		globalLogger.file.Close()
		globalLogger.mutex.Unlock()
	}
}

func (l *Logger) Info(msg string, args ...any) {
	l.write(slog.LevelInfo, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.write(slog.LevelError, msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.write(slog.LevelDebug, msg, args...)
}

// Panic logs a recovered panic value with where it was caught.
func (l *Logger) Panic(panicValue any, context string) {
	l.write(slog.LevelError, "panic", "context", context, "value", panicValue)
}

func (l *Logger) write(level slog.Level, msg string, args ...any) {
	if l == nil {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.slog.Log(context.Background(), level, msg, args...)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Convenience functions for the global logger
func LogInfo(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.Info(msg, args...)
	}
}

func LogError(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.Error(msg, args...)
	}
}

func LogDebug(msg string, args ...any) {
	if globalLogger != nil {
		globalLogger.Debug(msg, args...)
	}
}

func LogPanic(panicValue any, context string) {
	if globalLogger != nil {
		globalLogger.Panic(panicValue, context)
	}
}
