package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	structuredEncodingNameConstant       = "json"
	consoleEncodingNameConstant          = "console"
	unsupportedLogLevelTemplateConstant  = "unsupported log level %q"
	unsupportedLogFormatTemplateConstant = "unsupported log format %q"
)

// LogLevel names a logging threshold the factory understands.
type LogLevel string

// Log levels accepted by CreateLogger.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogFormat names an output encoding the factory understands.
type LogFormat string

// Log formats accepted by CreateLogger.
const (
	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

// zapLevel translates the level into its zapcore equivalent.
func (level LogLevel) zapLevel() (zapcore.Level, bool) {
	switch level {
	case LogLevelDebug:
		return zapcore.DebugLevel, true
	case LogLevelInfo:
		return zapcore.InfoLevel, true
	case LogLevelWarn:
		return zapcore.WarnLevel, true
	case LogLevelError:
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InvalidLevel, false
	}
}

// zapEncoding translates the format into the matching zap encoder name.
func (format LogFormat) zapEncoding() (string, bool) {
	switch format {
	case LogFormatStructured:
		return structuredEncodingNameConstant, true
	case LogFormatConsole:
		return consoleEncodingNameConstant, true
	default:
		return "", false
	}
}

// LoggerFactory assembles zap loggers from level and format selections.
type LoggerFactory struct{}

// NewLoggerFactory returns a ready LoggerFactory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger builds a logger for the requested level and format, rejecting
// values outside the supported sets.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	selectedLevel, levelSupported := requestedLogLevel.zapLevel()
	if !levelSupported {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, string(requestedLogLevel))
	}

	selectedEncoding, formatSupported := requestedLogFormat.zapEncoding()
	if !formatSupported {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, string(requestedLogFormat))
	}

	loggerConfiguration := zap.NewProductionConfig()
	loggerConfiguration.Level = zap.NewAtomicLevelAt(selectedLevel)
	loggerConfiguration.Encoding = selectedEncoding

	return loggerConfiguration.Build()
}
