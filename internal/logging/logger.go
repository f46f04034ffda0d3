// Package logging configures the process-wide structured logger.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/receptar-app/backend/config"
)

// NewLogger creates a configured logrus logger: human-readable text in
// development, JSON elsewhere.
func NewLogger(env config.Environment) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == config.Development {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
