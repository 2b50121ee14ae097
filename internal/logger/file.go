package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/dirloader/internal/models"
)

// DefaultLogDir is the run log directory relative to the working directory
var DefaultLogDir = filepath.Join(".dirloader", "logs")

// FileLogger writes load events to a timestamped run log and maintains a
// latest.log symlink pointing to the most recent run.
// It is thread-safe and implements loader.Logger.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger that writes to .dirloader/logs/ at level "info".
func NewFileLogger() (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(DefaultLogDir, "info")
}

// NewFileLoggerWithDir creates a FileLogger with a custom log directory.
func NewFileLoggerWithDir(logDir string) (*FileLogger, error) {
	return NewFileLoggerWithDirAndLevel(logDir, "info")
}

// NewFileLoggerWithDirAndLevel creates a FileLogger with a custom log directory and log level.
// The directory is created if needed. Run files are named run-YYYYMMDD-HHMMSS.log.
func NewFileLoggerWithDirAndLevel(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))

	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	if err := updateLatestLink(logDir, runFile); err != nil {
		file.Close()
		return nil, err
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== dirloader Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// updateLatestLink points logDir/latest.log at runFile
func updateLatestLink(logDir, runFile string) error {
	symlinkPath := filepath.Join(logDir, "latest.log")

	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			return fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}

	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		return fmt.Errorf("failed to create symlink: %w", err)
	}
	return nil
}

// RunFile returns the path of the run log being written
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return levelEnabled(fl.logLevel, messageLevel)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogScanComplete records the root and candidate count at INFO level.
func (fl *FileLogger) LogScanComplete(root string, candidates int) {
	fl.logWithLevel("INFO", fmt.Sprintf("Scanned %s: %d %s", root, candidates, plural(candidates, "candidate", "candidates")))
}

// LogFileLoaded records each extracted file at DEBUG level.
func (fl *FileLogger) LogFileLoaded(path string, units int) {
	fl.logWithLevel("DEBUG", fmt.Sprintf("Loaded %s: %d %s", path, units, plural(units, "document", "documents")))
}

// LogFileSkipped records a skipped file and its error at WARN level.
func (fl *FileLogger) LogFileSkipped(path string, err error) {
	fl.logWithLevel("WARN", fmt.Sprintf("Skipped %s: %v", path, err))
}

// LogSummary writes the final statistics and overall status at INFO level.
// Status is SUCCESS with no skipped files, PARTIAL when some files loaded
// and EMPTY when nothing loaded.
func (fl *FileLogger) LogSummary(result models.LoadResult) {
	if !fl.shouldLog("info") {
		return
	}

	ts := timestamp()

	status := "SUCCESS"
	switch {
	case result.Loaded == 0 && result.Candidates > 0:
		status = "EMPTY"
	case result.HasSkipped():
		status = "PARTIAL"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n[%s] === LOAD SUMMARY ===\n", ts)
	fmt.Fprintf(&sb, "[%s] Run ID:       %s\n", ts, result.RunID)
	fmt.Fprintf(&sb, "[%s] Root:         %s\n", ts, result.Root)
	fmt.Fprintf(&sb, "[%s] Pattern:      %s\n", ts, result.Pattern)
	fmt.Fprintf(&sb, "[%s] Candidates:   %d\n", ts, result.Candidates)
	fmt.Fprintf(&sb, "[%s] Loaded:       %d\n", ts, result.Loaded)
	fmt.Fprintf(&sb, "[%s] Skipped:      %d\n", ts, result.SkippedCount())
	fmt.Fprintf(&sb, "[%s] Documents:    %d\n", ts, result.Units)
	fmt.Fprintf(&sb, "[%s] Total time:   %.1fs\n", ts, result.Duration.Seconds())
	fmt.Fprintf(&sb, "[%s] Status:       %s (%d/%d files loaded)\n", ts, status, result.Loaded, result.Candidates)
	for _, s := range result.Skipped {
		fmt.Fprintf(&sb, "[%s]   skipped %s: %s\n", ts, s.Path, s.Error)
	}
	fmt.Fprintf(&sb, "[%s] Completed at: %s\n", ts, time.Now().Format(time.RFC3339))

	fl.writeRunLog(sb.String())
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}

	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
		// Flush after each write for real-time logging
		fl.runLog.Sync()
	}
}
