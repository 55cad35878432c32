package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// InitLogger initializes the structured logger. Output goes to stderr: stdout carries
// tool traffic for the MCP server and report output for the CLI.
func InitLogger(logLevel string, isDevelopment bool) *logrus.Logger {
	return initLogger(logLevel, isDevelopment, os.Stderr)
}

func initLogger(logLevel string, isDevelopment bool, out io.Writer) *logrus.Logger {
	log := logrus.New()

	if logLevel == "" {
		logLevel = os.Getenv("LEEGER_LOG_LEVEL")
		if logLevel == "" {
			if isDevelopment {
				logLevel = "debug"
			} else {
				logLevel = "info"
			}
		}
	}

	if level, err := logrus.ParseLevel(strings.ToLower(logLevel)); err == nil {
		log.SetLevel(level)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", logLevel).Warn("Invalid log level, using INFO")
	}

	if !isDevelopment || strings.ToLower(os.Getenv("LEEGER_LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.SetOutput(out)
	Logger = log
	return log
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if Logger == nil {
		return InitLogger("info", false)
	}
	return Logger
}

// WithLeague creates a logger with league context
func WithLeague(leagueName string) *logrus.Entry {
	return GetLogger().WithField("league", leagueName)
}

// WithYear creates a logger with league and year context
func WithYear(leagueName string, yearNumber int) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"league": leagueName,
		"year":   yearNumber,
	})
}

// WithSource creates a logger tagged with the loader a league came from
func WithSource(source string) *logrus.Entry {
	return GetLogger().WithField("source", source)
}

// WithTool creates a logger with MCP tool context
func WithTool(toolName string) *logrus.Entry {
	return GetLogger().WithField("tool", toolName)
}
