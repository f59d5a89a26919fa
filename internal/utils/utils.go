package utils

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
)

var Log = logrus.New()

// SetLogLevel sets the level of Log from its name.
func SetLogLevel(level string) error {
	// We are not using logrus' trace and panic levels
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(log.DebugLevel)
	case "info":
		Log.SetLevel(log.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(log.WarnLevel)
	case "error":
		Log.SetLevel(log.ErrorLevel)
	case "fatal":
		Log.SetLevel(log.FatalLevel)
	default:
		return fmt.Errorf("bad log level %q", level)
	}
	return nil
}

// LeveledLogger exposes a logrus logger through the key/value logging interface
// used by go-retryablehttp.
type LeveledLogger struct {
	Logger *logrus.Logger
}

func (l LeveledLogger) entry(kv []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return l.Logger.WithFields(fields)
}

func (l LeveledLogger) Error(msg string, kv ...interface{}) { l.entry(kv).Error(msg) }
func (l LeveledLogger) Warn(msg string, kv ...interface{})  { l.entry(kv).Warn(msg) }
func (l LeveledLogger) Info(msg string, kv ...interface{})  { l.entry(kv).Debug(msg) }
func (l LeveledLogger) Debug(msg string, kv ...interface{}) { l.entry(kv).Debug(msg) }
