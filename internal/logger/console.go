// Package logger provides logging implementations for directory loads.
//
// Loggers receive scan, per-file and summary events from loader.DirectoryLoader.
// Implementations are thread-safe and support various output destinations
// (console, run log files, or several at once through MultiLogger).
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/harrison/dirloader/internal/models"
)

// ConsoleLogger logs load progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is enabled automatically when writing to a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	progress    *ProgressBar
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal reports whether w is a TTY that should receive ANSI colors.
// NO_COLOR and non-file writers disable color.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if color.NoColor {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return levelEnabled(cl.logLevel, messageLevel)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// logWithLevel writes message if the level passes filtering.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	cl.writeLine(level, message)
}

// writeLine formats one leveled line. Callers must hold the mutex.
func (cl *ConsoleLogger) writeLine(level string, message string) {
	ts := timestamp()
	if cl.colorOutput {
		fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, colorLevel(level), message)
		return
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, level, message)
}

// colorLevel returns the level label wrapped in its ANSI color.
func colorLevel(level string) string {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack).Sprint(level)
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(level)
	case "INFO":
		return color.New(color.FgBlue).Sprint(level)
	case "WARN":
		return color.New(color.FgYellow).Sprint(level)
	case "ERROR":
		return color.New(color.FgRed).Sprint(level)
	default:
		return level
	}
}

// LogScanComplete logs how many candidate files discovery found at INFO level
// and resets the progress bar.
// Format: "[HH:MM:SS] [INFO] Found <n> candidate files in <root>"
func (cl *ConsoleLogger) LogScanComplete(root string, candidates int) {
	cl.mutex.Lock()
	cl.progress = NewProgressBar(candidates, 20, cl.colorOutput)
	cl.mutex.Unlock()

	cl.logWithLevel("INFO", fmt.Sprintf("Found %d candidate %s in %s", candidates, plural(candidates, "file", "files"), root))
}

// LogFileLoaded logs a successfully extracted file at DEBUG level with the
// current progress.
// Format: "[HH:MM:SS] [DEBUG] [====    ] 2/4 (50%) <path>: <n> documents"
func (cl *ConsoleLogger) LogFileLoaded(path string, units int) {
	progress := cl.advance()
	msg := fmt.Sprintf("%s: %d %s", path, units, plural(units, "document", "documents"))
	if progress != "" {
		msg = progress + " " + msg
	}
	cl.logWithLevel("DEBUG", msg)
}

// LogFileSkipped logs a file whose extraction failed at WARN level.
// Format: "[HH:MM:SS] [WARN] Skipping <path>: <error>"
func (cl *ConsoleLogger) LogFileSkipped(path string, err error) {
	cl.advance()
	cl.logWithLevel("WARN", fmt.Sprintf("Skipping %s: %v", path, err))
}

// advance increments the progress bar and returns its rendering
func (cl *ConsoleLogger) advance() string {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	if cl.progress == nil {
		return ""
	}
	cl.progress.Increment()
	return cl.progress.Render()
}

// LogSummary logs the load summary at INFO level.
// Skipped files are listed individually after the counts.
func (cl *ConsoleLogger) LogSummary(result models.LoadResult) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog("info") {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()
	var sb strings.Builder

	if cl.colorOutput {
		scheme := newColorScheme()
		fmt.Fprintf(&sb, "[%s] %s\n", ts, color.New(color.Bold).Sprint("=== Load Summary ==="))
		fmt.Fprintf(&sb, "[%s] %s\n", ts, formatColorizedCounts(result, scheme))
		fmt.Fprintf(&sb, "[%s] Duration: %s\n", ts, formatDuration(result.Duration))
		if result.HasSkipped() {
			fmt.Fprintf(&sb, "[%s] %s\n", ts, scheme.fail.Sprint("Skipped files:"))
			for _, s := range result.Skipped {
				fmt.Fprintf(&sb, "[%s]   - %s: %s\n", ts, scheme.fail.Sprint(s.Path), s.Error)
			}
		}
	} else {
		fmt.Fprintf(&sb, "[%s] === Load Summary ===\n", ts)
		fmt.Fprintf(&sb, "[%s] Candidates: %d\n", ts, result.Candidates)
		fmt.Fprintf(&sb, "[%s] Loaded: %d\n", ts, result.Loaded)
		fmt.Fprintf(&sb, "[%s] Skipped: %d\n", ts, result.SkippedCount())
		fmt.Fprintf(&sb, "[%s] Documents: %d\n", ts, result.Units)
		fmt.Fprintf(&sb, "[%s] Duration: %s\n", ts, formatDuration(result.Duration))
		if result.HasSkipped() {
			fmt.Fprintf(&sb, "[%s] Skipped files:\n", ts)
			for _, s := range result.Skipped {
				fmt.Fprintf(&sb, "[%s]   - %s: %s\n", ts, s.Path, s.Error)
			}
		}
	}

	io.WriteString(cl.writer, sb.String())
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// plural picks the singular or plural noun for n
func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "250ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}
