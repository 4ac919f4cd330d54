package app

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel parses a string into a LogLevel. Unknown names give info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Path is the log file, opened for append. Ignored when Output is set.
	Path string
	// Output overrides Path.
	Output io.Writer
}

// NewLogger builds a JSON zap logger. The returned close function flushes
// and closes the log file. Without Path or Output the logger discards
// everything.
func NewLogger(cfg LoggerConfig) (*zap.Logger, func(), error) {
	var (
		sink    zapcore.WriteSyncer
		closeFn = func() {}
	)
	switch {
	case cfg.Output != nil:
		sink = zapcore.AddSync(cfg.Output)
	case cfg.Path != "":
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, &InitError{Component: "logger", Err: err}
		}
		sink = zapcore.AddSync(f)
		closeFn = func() { _ = f.Close() }
	default:
		return zap.NewNop(), closeFn, nil
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), sink, cfg.Level.zapLevel())
	logger := zap.New(core, zap.AddCaller()).Named("storefront")

	return logger, func() {
		_ = logger.Sync()
		closeFn()
	}, nil
}
