package logzero

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/time/rate"
)

// Logger is a named holder of a severity threshold and a set of
// destinations. Log calls are safe to interleave from multiple
// goroutines; reconfiguration of the same logger must be serialized by
// the registry lock or the caller.
type Logger struct {
	mu        sync.Mutex
	name      string
	level     Level
	dests     []*Destination
	formatter Formatter // last formatter explicitly set
}

// Name returns the logger name.
func (l *Logger) Name() string {
	return l.name
}

// Level returns the logger's current severity threshold.
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel sets the logger threshold and updates the severity filter of
// every internal destination (and of user-added ones if updateCustom).
// Destinations flagged CustomLevel are never silently overwritten; change
// those explicitly via Setup or LogFile with an explicit file level.
func (l *Logger) SetLevel(level Level, updateCustom bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	for _, d := range l.dests {
		if (d.Internal || updateCustom) && !d.CustomLevel {
			d.MinLevel = level
		}
	}
}

// SetFormatter replaces the rendering strategy on every internal
// destination (and on user-added ones if updateCustom), without touching
// severity filters. The formatter also becomes the default for
// destinations created by later reconfiguration.
func (l *Logger) SetFormatter(formatter Formatter, updateCustom bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.formatter = formatter
	for _, d := range l.dests {
		if d.Internal || updateCustom {
			d.Formatter = formatter
		}
	}
}

// EnableJSON switches between JSON and text formatting. JSON mode is a
// formatter swap, not a persistent flag: a destination added later
// without re-specifying JSON reverts to text.
func (l *Logger) EnableJSON(enabled bool, ensureASCII bool, updateCustom bool) {
	if enabled {
		l.SetFormatter(NewJSONFormatter(ensureASCII), updateCustom)
	} else {
		l.SetFormatter(NewTextFormatter(), updateCustom)
	}
}

// AddDestination attaches a user-owned destination. It is not touched
// structurally by reconfiguration, only kept in sync per the update rules.
func (l *Logger) AddDestination(d *Destination) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dests = append(l.dests, d)
}

// RemoveDestination detaches a destination without closing it.
func (l *Logger) RemoveDestination(d *Destination) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, cur := range l.dests {
		if cur == d {
			l.dests = append(l.dests[:i], l.dests[i+1:]...)
			return
		}
	}
}

// Destinations returns a snapshot of the attached destinations.
func (l *Logger) Destinations() []*Destination {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Destination, len(l.dests))
	copy(out, l.dests)
	return out
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(1, DEBUG, "", format, args...)
}

// Info logs a message at INFO level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(1, INFO, "", format, args...)
}

// Warning logs a message at WARNING level.
func (l *Logger) Warning(format string, args ...interface{}) {
	l.log(1, WARNING, "", format, args...)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(1, ERROR, "", format, args...)
}

// Critical logs a message at CRITICAL level.
func (l *Logger) Critical(format string, args ...interface{}) {
	l.log(1, CRITICAL, "", format, args...)
}

// Log logs a message at an arbitrary level.
func (l *Logger) Log(level Level, format string, args ...interface{}) {
	l.log(1, level, "", format, args...)
}

// Exception logs an error at ERROR level together with a stack trace of
// the calling goroutine, each trace line attached below the log line.
func (l *Logger) Exception(err error, format string, args ...interface{}) {
	trace := ""
	if err != nil {
		trace = err.Error() + "\n"
	}
	trace += captureStack(2)
	l.log(1, ERROR, trace, format, args...)
}

// destView is a consistent snapshot of one destination's mutable fields,
// taken under the logger lock. Emission works off the snapshot so that
// concurrent SetLevel/SetFormatter/Setup calls never race with a write in
// flight.
type destView struct {
	d         *Destination
	minLevel  Level
	formatter Formatter
	limiter   *rate.Limiter
}

// log builds the record and fans it out to every accepting destination.
// extraDepth is the number of wrapper frames between the application call
// site and this function's caller.
func (l *Logger) log(extraDepth int, level Level, trace string, format string, args ...interface{}) {
	l.mu.Lock()
	if level < l.level || len(l.dests) == 0 {
		l.mu.Unlock()
		return
	}
	views := make([]destView, len(l.dests))
	for i, d := range l.dests {
		views[i] = destView{d: d, minLevel: d.MinLevel, formatter: d.Formatter, limiter: d.Limiter}
	}
	l.mu.Unlock()

	// Format outside the lock, this is the slow part.
	message := format
	if len(args) > 0 {
		message = fmt.Sprintf(format, args...)
	}
	r := newRecord(l.name, level, extraDepth+2, message)
	r.Trace = trace

	for _, v := range views {
		if r.Level < v.minLevel {
			continue
		}
		if v.limiter != nil && !v.limiter.Allow() {
			continue
		}
		f := v.formatter
		if f == nil {
			f = NewUncoloredTextFormatter()
		}
		if err := v.d.sink.Write(r, f.Format(r)); err != nil {
			// Silently dropping log data is worse than being noisy about
			// it: sink failures are reported on stderr.
			fmt.Fprintf(os.Stderr, "logzero: %s destination write failed: %v\n", v.d.Kind, err)
		}
	}
}
