// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

// Package log provides the process-wide logger used by the calculator agent.
// It is a thin facade over a zap SugaredLogger so call sites stay short.
package log

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging interface used throughout the module.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
}

// Format names accepted by Configure.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	mu     sync.RWMutex
	level  = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	format = FormatConsole
	// Default is the logger used by the package level helpers.
	Default Logger = newLogger(FormatConsole)
)

func newLogger(f string) *zap.SugaredLogger {
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	var encoder zapcore.Encoder
	if f == FormatJSON {
		encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level)
	// Skip the facade frame so callers see their own file:line.
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

// Configure sets the minimum level ("debug", "info", "warn", "error") and the
// output format ("console" or "json") of the default logger.
func Configure(lvl, f string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(lvl))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", lvl, err)
	}
	if f == "" {
		f = FormatConsole
	}
	if f != FormatConsole && f != FormatJSON {
		return fmt.Errorf("invalid log format %q", f)
	}
	level.SetLevel(l)
	mu.Lock()
	defer mu.Unlock()
	if f != format {
		format = f
		Default = newLogger(f)
	}
	return nil
}

// SetLogger replaces the default logger, mostly useful in tests.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	Default = l
}

func logger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return Default
}

// Debug logs at debug level.
func Debug(args ...interface{}) { logger().Debug(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...interface{}) { logger().Debugf(format, args...) }

// Info logs at info level.
func Info(args ...interface{}) { logger().Info(args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) { logger().Infof(format, args...) }

// Warn logs at warn level.
func Warn(args ...interface{}) { logger().Warn(args...) }

// Warnf logs a formatted message at warn level.
func Warnf(format string, args ...interface{}) { logger().Warnf(format, args...) }

// Error logs at error level.
func Error(args ...interface{}) { logger().Error(args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) { logger().Errorf(format, args...) }

// Fatal logs at fatal level and exits.
func Fatal(args ...interface{}) { logger().Fatal(args...) }

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(format string, args ...interface{}) { logger().Fatalf(format, args...) }
