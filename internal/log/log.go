package log

import (
	"io"
	"os"
	"sync"

	cblog "github.com/charmbracelet/log"
)

// Logger is the charmbracelet logger used across dankvscode.
type Logger = cblog.Logger

var (
	logger     *Logger
	loggerOnce sync.Once
)

func initLogger() {
	logger = cblog.NewWithOptions(os.Stderr, cblog.Options{
		ReportTimestamp: false,
		Prefix:          "dankvscode",
		Level:           levelFromEnv(),
	})
}

func levelFromEnv() cblog.Level {
	if lvl, err := cblog.ParseLevel(os.Getenv("DANKVSCODE_LOG_LEVEL")); err == nil {
		return lvl
	}
	return cblog.InfoLevel
}

// GetLogger returns the shared logger, creating it on first use.
func GetLogger() *Logger {
	loggerOnce.Do(initLogger)
	return logger
}

// New returns a logger writing to w, used by tests to capture output.
func New(w io.Writer) *Logger {
	return cblog.NewWithOptions(w, cblog.Options{Level: cblog.DebugLevel})
}

func SetVerbose(verbose bool) {
	if verbose {
		GetLogger().SetLevel(cblog.DebugLevel)
		return
	}
	GetLogger().SetLevel(levelFromEnv())
}

func Debug(msg interface{}, keyvals ...interface{}) { GetLogger().Debug(msg, keyvals...) }
func Info(msg interface{}, keyvals ...interface{})  { GetLogger().Info(msg, keyvals...) }
func Warn(msg interface{}, keyvals ...interface{})  { GetLogger().Warn(msg, keyvals...) }
func Error(msg interface{}, keyvals ...interface{}) { GetLogger().Error(msg, keyvals...) }
func Fatal(msg interface{}, keyvals ...interface{}) { GetLogger().Fatal(msg, keyvals...) }

func Debugf(format string, args ...interface{}) { GetLogger().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { GetLogger().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { GetLogger().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { GetLogger().Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { GetLogger().Fatalf(format, args...) }
