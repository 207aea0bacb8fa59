// Package logging configures the process-wide logrus logger and adapts it for
// the libraries that bring their own logging interfaces.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup applies level and format to the standard logrus logger.
func Setup(level, format string) error {
	return configure(logrus.StandardLogger(), os.Stderr, level, format)
}

func configure(logger *logrus.Logger, out io.Writer, level, format string) error {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	default:
		return fmt.Errorf("invalid log format %q: expected %q or %q", format, FormatText, FormatJSON)
	}

	logger.SetOutput(out)
	logger.SetLevel(lvl)
	return nil
}

// GormLogger routes gorm's slow-query and error output through logrus.
// SQL tracing is only enabled when logrus runs at debug level or below.
func GormLogger() gormlogger.Interface {
	level := gormlogger.Warn
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		level = gormlogger.Info
	}
	return gormlogger.New(logrus.StandardLogger(), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
