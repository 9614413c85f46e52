package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/skykernel/logger"
)

const (
	logDir      = "logs"
	logFileName = "skyview.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging sends logs to logs/skyview.log when debug is set and discards them otherwise
// The terminal belongs to the viewer so nothing is written to stdout or stderr
func setupLogging(debug bool) *os.File {
	if !debug {
		logger.Setup(logger.Options{Output: io.Discard})
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		logger.Setup(logger.Options{Output: io.Discard})
		return nil
	}
	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("skyview-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.Setup(logger.Options{Output: io.Discard})
		return nil
	}
	logger.Setup(logger.Options{Level: "debug", Output: f})
	return f
}
