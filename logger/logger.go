package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger
// Usable before Init with logrus defaults at warn level
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Options overrides environment-derived settings
// Empty fields fall back to LOG_LEVEL, LOG_FORMAT and stdout
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// Init configures Log from LOG_LEVEL (default info) and LOG_FORMAT (json|text)
// Call once from main before the simulation starts
func Init() {
	Setup(Options{})
}

// Setup configures Log with explicit overrides
func Setup(opts Options) {
	Log = logrus.New()

	levelName := opts.Level
	if levelName == "" {
		if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
			levelName = v
		} else {
			levelName = "info"
		}
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	format := opts.Format
	if format == "" {
		format = os.Getenv("LOG_FORMAT")
	}
	if strings.ToLower(format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   opts.Output == nil,
		})
	}

	if opts.Output != nil {
		Log.SetOutput(opts.Output)
	} else {
		Log.SetOutput(os.Stdout)
	}
}

// With returns an entry tagged with the emitting subsystem
func With(subsystem string) *logrus.Entry {
	return Log.WithField("subsystem", subsystem)
}
