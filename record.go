package logzero

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Record is an immutable snapshot of a single log call. It is created per
// call, passed synchronously through every destination of the owning
// logger, and then discarded.
type Record struct {
	Time      time.Time
	Level     Level
	Message   string
	Name      string // owning logger name
	Module    string // file name without extension
	Function  string
	File      string // base file name
	Path      string // full file path
	Line      int
	PID       int
	Process   string // process (executable) name
	Goroutine string // thread-name analog
	Trace     string // optional multi-line stack or error trace
}

var processName = filepath.Base(os.Args[0])

// newRecord builds a record for the given message, capturing the call site
// callDepth stack frames above newRecord itself.
func newRecord(name string, level Level, callDepth int, message string) *Record {
	r := &Record{
		Time:      time.Now(),
		Level:     level,
		Message:   message,
		Name:      name,
		PID:       os.Getpid(),
		Process:   processName,
		Goroutine: goroutineID(),
	}

	pc, file, line, ok := runtime.Caller(callDepth)
	if !ok {
		r.Module = "???"
		r.File = "???"
		r.Function = "???"
		return r
	}
	r.Path = file
	r.File = filepath.Base(file)
	r.Module = strings.TrimSuffix(r.File, filepath.Ext(r.File))
	r.Line = line
	if fn := runtime.FuncForPC(pc); fn != nil {
		fname := fn.Name()
		if idx := strings.LastIndex(fname, "."); idx >= 0 {
			fname = fname[idx+1:]
		}
		r.Function = fname
	} else {
		r.Function = "???"
	}
	return r
}

// goroutineID extracts the current goroutine id from the stack header
// ("goroutine 12 [running]:"). Go exposes no thread names, so this fills
// the thread-name slot of the record.
func goroutineID() string {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	fields := bytes.Fields(buf[:n])
	if len(fields) >= 2 {
		return "goroutine-" + string(fields[1])
	}
	return "goroutine-?"
}

// captureStack returns a formatted stack trace of the calling goroutine,
// skipping the logzero frames themselves.
func captureStack(skip int) string {
	buf := make([]byte, 16384)
	n := runtime.Stack(buf, false)
	lines := strings.Split(string(buf[:n]), "\n")
	// First line is the goroutine header; each frame is two lines.
	if len(lines) > 1+2*skip {
		lines = append(lines[:1], lines[1+2*skip:]...)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
