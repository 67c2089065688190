package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"calcd/application/logging"

	"github.com/sirupsen/logrus"
)

// LogrusLogger writes Printf-style messages at info level.
type LogrusLogger struct {
	entry logrus.FieldLogger
}

func NewLogrusLogger(entry logrus.FieldLogger) logging.Logger {
	if entry == nil {
		entry = logrus.StandardLogger()
	}
	return &LogrusLogger{entry: entry}
}

// NewComponentLogger tags every message with the component that produced it.
func NewComponentLogger(component string) logging.Logger {
	return NewLogrusLogger(logrus.WithField("component", component))
}

func (l *LogrusLogger) Printf(format string, v ...any) {
	l.entry.Infof(format, v...)
}

// Configure sets the level and format of the standard logrus logger.
func Configure(level string, out io.Writer) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}
	formatter := new(logrus.TextFormatter)
	formatter.TimestampFormat = time.RFC3339
	formatter.FullTimestamp = true
	logrus.SetFormatter(formatter)
	logrus.SetLevel(parsed)
	if out != nil {
		logrus.SetOutput(out)
	}
	return nil
}

func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return logrus.InfoLevel, nil
	case "trace":
		return logrus.TraceLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
