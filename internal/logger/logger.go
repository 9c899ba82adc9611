// Package logger holds the process-wide logrus logger used outside the
// simulation core.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. Components derive scoped entries with
// Log.WithField("component", ...).
var Log = logrus.New()

func init() {
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetLevel(logrus.InfoLevel)
}

// Setup applies a textual level ("debug", "info", "warn", ...). An unknown
// level leaves the current one in place and is reported.
func Setup(level string) {
	if level == "" {
		return
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		Log.WithError(err).Warn("unknown log level, keeping current")
		return
	}
	Log.SetLevel(lvl)
}

// Component returns an entry tagged with the component name.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
