package logger

import (
	"reflect"

	"github.com/harrison/dirloader/internal/models"
)

// EventLogger is the set of load events every logger in this package handles.
// It matches loader.Logger.
type EventLogger interface {
	LogScanComplete(root string, candidates int)
	LogFileLoaded(path string, units int)
	LogFileSkipped(path string, err error)
	LogSummary(result models.LoadResult)
}

// MessageLogger is implemented by loggers that also accept free-form messages.
type MessageLogger interface {
	LogDebug(message string)
	LogInfo(message string)
}

// MultiLogger fans every event out to each of its loggers in order.
type MultiLogger struct {
	loggers []EventLogger
}

// NewMultiLogger creates a MultiLogger. Nil loggers are dropped, including
// nil pointers stored in a non-nil interface.
func NewMultiLogger(loggers ...EventLogger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if isNilLogger(l) {
			continue
		}
		ml.loggers = append(ml.loggers, l)
	}
	return ml
}

func isNilLogger(l EventLogger) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// Len returns the number of wrapped loggers
func (ml *MultiLogger) Len() int {
	return len(ml.loggers)
}

// LogScanComplete forwards the discovery result to every logger.
func (ml *MultiLogger) LogScanComplete(root string, candidates int) {
	for _, l := range ml.loggers {
		l.LogScanComplete(root, candidates)
	}
}

// LogFileLoaded forwards a successful extraction to every logger.
func (ml *MultiLogger) LogFileLoaded(path string, units int) {
	for _, l := range ml.loggers {
		l.LogFileLoaded(path, units)
	}
}

// LogFileSkipped forwards a skipped file to every logger.
func (ml *MultiLogger) LogFileSkipped(path string, err error) {
	for _, l := range ml.loggers {
		l.LogFileSkipped(path, err)
	}
}

// LogSummary forwards the final load result to every logger.
func (ml *MultiLogger) LogSummary(result models.LoadResult) {
	for _, l := range ml.loggers {
		l.LogSummary(result)
	}
}

// LogDebug sends message to every logger that implements MessageLogger.
func (ml *MultiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		if m, ok := l.(MessageLogger); ok {
			m.LogDebug(message)
		}
	}
}

// LogInfo sends message to every logger that implements MessageLogger.
func (ml *MultiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		if m, ok := l.(MessageLogger); ok {
			m.LogInfo(message)
		}
	}
}
