// Package log holds the process-wide zap logger. Report output is written to
// stdout by the callers; everything logged here goes to stderr.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	// base has no caller skip and is handed to components.
	base = zap.NewNop().Sugar()
	// log skips one frame for the package-level helpers.
	log = base
)

// Init initializes the package-level logger
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %v", err)
	}

	base = zapLogger.Sugar()
	log = zapLogger.WithOptions(zap.AddCallerSkip(1)).Sugar()
	return nil
}

// Sugared returns the logger for components that take one as a field. It is
// a no-op logger until Init is called.
func Sugared() *zap.SugaredLogger {
	return base
}

// Sync flushes any buffered log entries
func Sync() {
	_ = base.Sync()
}

func Debugw(msg string, keysAndValues ...any) {
	log.Debugw(msg, keysAndValues...)
}

func Infof(template string, args ...any) {
	log.Infof(template, args...)
}

func Infow(msg string, keysAndValues ...any) {
	log.Infow(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...any) {
	log.Warnw(msg, keysAndValues...)
}

func Errorw(msg string, keysAndValues ...any) {
	log.Errorw(msg, keysAndValues...)
}

func Fatalf(template string, args ...any) {
	log.Fatalf(template, args...)
}
