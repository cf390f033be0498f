package main

import (
	"os"

	"kanon/internal/logging"
)

// newLogger builds the command logger. Level comes from KANON_LOG_LEVEL;
// format follows the command's --format flag so machine-readable runs get
// machine-readable logs.
func newLogger(outputFormat string) *logging.Logger {
	level := logging.InfoLevel
	switch os.Getenv("KANON_LOG_LEVEL") {
	case "debug":
		level = logging.DebugLevel
	case "warn":
		level = logging.WarnLevel
	case "error":
		level = logging.ErrorLevel
	}

	format := logging.HumanFormat
	if outputFormat == "json" {
		format = logging.JSONFormat
	}

	return logging.NewLogger(logging.Config{
		Format: format,
		Level:  level,
	})
}
