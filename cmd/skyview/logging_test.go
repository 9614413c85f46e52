package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/skykernel/logger"
)

func TestSetupLoggingDisabled(t *testing.T) {
	logFile := setupLogging(false)
	if logFile != nil {
		t.Error("debug off should not open a log file")
		logFile.Close()
	}
	if logger.Log.Out != io.Discard {
		t.Errorf("log output = %v, want io.Discard", logger.Log.Out)
	}
}

func TestSetupLoggingDebug(t *testing.T) {
	t.Chdir(t.TempDir())

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("debug on should open a log file")
	}
	defer logFile.Close()

	logPath := filepath.Join(logDir, logFileName)
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Fatal("log file missing")
	}

	logger.Log.Info("viewer started")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("log file is empty after writing")
	}
	if logger.Log.Out == os.Stdout || logger.Log.Out == os.Stderr {
		t.Error("logs must not reach the terminal")
	}
}

func TestSetupLoggingRotates(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0o644); err != nil {
		t.Fatalf("seed oversized log: %v", err)
	}

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("no log file after rotation")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("read log dir: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("oversized log was not rotated")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("stat fresh log: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("fresh log is %[2]d bytes, limit %[1]d", maxLogSize, info.Size())
	}
}
