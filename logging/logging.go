// Package logging builds the zap loggers used by command-line tools. Library packages never
// construct loggers themselves; they accept one through their configuration.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel translates a textual log level (debug, info, warn, error) to a zap level
func ParseLevel(level string) (zapcore.Level, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return lvl, nil
}

// New creates a logger at the given level. Development loggers write human-readable console
// output; otherwise output is JSON.
func New(level string, development bool) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	var conf zap.Config
	if development {
		conf = zap.NewDevelopmentConfig()
	} else {
		conf = zap.NewProductionConfig()
	}
	conf.Level = zap.NewAtomicLevelAt(lvl)
	conf.OutputPaths = []string{"stderr"}
	return conf.Build()
}

// OrNop returns log, or a no-op logger if log is nil
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
