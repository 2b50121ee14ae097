package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/dirloader/internal/models"
)

type recordingLogger struct {
	events []string
}

func (r *recordingLogger) LogScanComplete(root string, candidates int) {
	r.events = append(r.events, "scan:"+root)
}

func (r *recordingLogger) LogFileLoaded(path string, units int) {
	r.events = append(r.events, "loaded:"+path)
}

func (r *recordingLogger) LogFileSkipped(path string, err error) {
	r.events = append(r.events, "skipped:"+path)
}

func (r *recordingLogger) LogSummary(result models.LoadResult) {
	r.events = append(r.events, "summary:"+result.RunID)
}

func TestMultiLogger_FanOut(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}
	ml := NewMultiLogger(a, nil, b)

	assert.Equal(t, 2, ml.Len())

	ml.LogScanComplete("/docs", 2)
	ml.LogFileLoaded("/docs/a.docx", 1)
	ml.LogFileSkipped("/docs/b.docx", errors.New("bad"))
	ml.LogSummary(models.LoadResult{RunID: "run-1"})

	want := []string{"scan:/docs", "loaded:/docs/a.docx", "skipped:/docs/b.docx", "summary:run-1"}
	assert.Equal(t, want, a.events)
	assert.Equal(t, want, b.events)
}

func TestMultiLogger_WithConsole(t *testing.T) {
	buf := &bytes.Buffer{}
	ml := NewMultiLogger(NewConsoleLogger(buf, "warn"), &recordingLogger{})

	ml.LogFileSkipped("/docs/b.docx", errors.New("corrupt"))
	assert.True(t, strings.Contains(buf.String(), "Skipping /docs/b.docx: corrupt"))
}

func TestMultiLogger_Empty(t *testing.T) {
	ml := NewMultiLogger()
	assert.Equal(t, 0, ml.Len())
	ml.LogSummary(models.LoadResult{})
}

func TestMultiLogger_DropsTypedNil(t *testing.T) {
	var fl *FileLogger
	var cl *ConsoleLogger
	a := &recordingLogger{}

	ml := NewMultiLogger(a, fl, cl)
	assert.Equal(t, 1, ml.Len())

	// Must not dereference the dropped nil pointers
	ml.LogScanComplete("/docs", 1)
	ml.LogInfo("done")
	assert.Equal(t, []string{"scan:/docs"}, a.events)
}

func TestMultiLogger_Messages(t *testing.T) {
	buf := &bytes.Buffer{}
	rec := &recordingLogger{}
	ml := NewMultiLogger(rec, NewConsoleLogger(buf, "info"))

	ml.LogDebug("hidden detail")
	ml.LogInfo("Wrote 2 documents to out.json")

	out := buf.String()
	assert.NotContains(t, out, "hidden detail")
	assert.Contains(t, out, "[INFO] Wrote 2 documents to out.json")
	assert.Empty(t, rec.events, "loggers without message support are skipped")
}
