// Package telemetry sets up structured logging for the simulator. Every log
// entry goes to stderr; stdout is reserved exclusively for the output
// grammar the simulation's external contract defines.
package telemetry

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logrus.Logger writing JSON-free text entries to
// stderr at the given level ("debug", "info", "warn", "error").
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.Out = os.Stderr

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log
}
