// Package logging configures the process-wide logger.
package logging

import (
	"io"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup configures logrus for an interactive CLI: warnings and errors on
// stderr, full debug output mirrored into a rotating log file when debug is
// enabled. logFile may be empty to skip the file sink.
func Setup(debug bool, logFile string) {
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: !debug,
		FullTimestamp:    debug,
	})

	if !debug {
		log.SetLevel(log.WarnLevel)
		log.SetOutput(os.Stderr)
		return
	}

	log.SetLevel(log.DebugLevel)
	if logFile == "" {
		log.SetOutput(os.Stderr)
		return
	}
	rotating := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotating))
}

// DefaultLogFile is where debug logs go when --debug is set.
func DefaultLogFile(home string) string {
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".claude", "portkey-setup.log")
}
