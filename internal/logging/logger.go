// Package logging provides the leveled, optionally colored diagnostics log.
// Log lines go to stderr so that stdout carries only the validation report.
// An optional log file receives the same lines without colors, tagged with
// the run id of the invocation.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/mediastandard/internal/config"
	"github.com/backmassage/mediastandard/internal/term"
)

// Logger provides leveled logging with an optional file sink.
type Logger struct {
	mu    sync.Mutex
	sugar *zap.SugaredLogger
	file  *os.File
	run   string
}

// NewLogger logs to w (normally stderr) and, when cfg.LogFile is set,
// appends to that file. Colors follow the term package, so call
// term.Configure first. Call Close when done.
func NewLogger(cfg *config.Config, w io.Writer) (*Logger, error) {
	l := &Logger{run: uuid.NewString()}

	level := zapcore.InfoLevel
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}

	levelEnc := zapcore.CapitalLevelEncoder
	if term.Enabled() {
		levelEnc = zapcore.CapitalColorLevelEncoder
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(levelEnc)), zapcore.AddSync(w), level),
	}

	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		fileCore := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(zapcore.CapitalLevelEncoder)),
			zapcore.AddSync(f), level,
		).With([]zapcore.Field{zap.String("run", l.run)})
		cores = append(cores, fileCore)
	}

	l.sugar = zap.New(zapcore.NewTee(cores...)).Sugar()
	return l, nil
}

func encoderConfig(level zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      level,
		EncodeTime:       zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05"),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// Run returns the id that tags this invocation in the log file.
func (l *Logger) Run() string { return l.run }

// Close flushes the logger and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.sugar.Sync()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

// Success logs at INFO level, marked with a green check when colors are on.
func (l *Logger) Success(format string, args ...interface{}) {
	l.sugar.Info(term.Success.Render("✓") + " " + fmt.Sprintf(format, args...))
}

// Warn logs at WARN level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

// Error logs at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Debug logs at DEBUG level; dropped unless the logger is verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}
