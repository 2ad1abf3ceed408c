package logzero

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/metachris/logzero/internal/rotate"
)

// Kind identifies a destination variant. The set is closed: dispatch is
// decided at construction time, never by inspecting a live sink.
type Kind int

const (
	KindStream Kind = iota
	KindFile
	KindSyslog
	KindGELF
)

func (k Kind) String() string {
	switch k {
	case KindStream:
		return "stream"
	case KindFile:
		return "file"
	case KindSyslog:
		return "syslog"
	case KindGELF:
		return "gelf"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sink accepts rendered log lines for one output target.
type Sink interface {
	// Write outputs one rendered line. The record is passed alongside for
	// sinks that need severity or source metadata (syslog, GELF).
	Write(r *Record, line string) error

	// Close handles cleanup such as flushing buffers or closing files.
	Close() error
}

// Destination is one output target of a Logger, with its own severity
// filter and formatter. A Logger exclusively owns its destinations.
type Destination struct {
	// Kind of the underlying sink.
	Kind Kind
	// MinLevel is the destination's own severity filter, applied after
	// the logger-level threshold.
	MinLevel Level
	// CustomLevel marks MinLevel as explicitly chosen: blanket level
	// changes must not silently overwrite it.
	CustomLevel bool
	// Internal marks destinations created and owned by the
	// reconciliation engine, subject to automatic removal and update on
	// reconfiguration. User-added destinations are left structurally
	// alone.
	Internal bool
	// Formatter renders records for this destination.
	Formatter Formatter
	// Limiter optionally throttles this destination; records beyond the
	// rate are dropped.
	Limiter *rate.Limiter

	sink   Sink
	stream *os.File // set for stream destinations, identity for duplicate avoidance
}

// emit renders and writes a single record.
func (d *Destination) emit(r *Record) error {
	f := d.Formatter
	if f == nil {
		f = NewUncoloredTextFormatter()
	}
	return d.sink.Write(r, f.Format(r))
}

// Close closes the underlying sink.
func (d *Destination) Close() error {
	return d.sink.Close()
}

// streamSink writes lines to a standard output stream. The stream itself
// is never closed.
type streamSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *streamSink) Write(_ *Record, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, line+"\n"); err != nil {
		return fmt.Errorf("failed to write log line: %w", err)
	}
	return nil
}

func (s *streamSink) Close() error { return nil }

// writerSink writes lines to an arbitrary writer, closing it when owned.
type writerSink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *writerSink) Write(_ *Record, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, line+"\n"); err != nil {
		return fmt.Errorf("failed to write log line: %w", err)
	}
	return nil
}

func (s *writerSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NewStreamDestination creates a destination writing to one of the
// standard output streams. The level is considered explicitly chosen, so
// blanket level changes leave it alone.
func NewStreamDestination(stream *os.File, level Level, formatter Formatter) *Destination {
	return &Destination{
		Kind:        KindStream,
		MinLevel:    level,
		CustomLevel: true,
		Formatter:   formatter,
		sink:        &streamSink{w: stream},
		stream:      stream,
	}
}

// NewWriterDestination creates a destination writing rendered lines to an
// arbitrary writer. Useful for tests and custom targets.
func NewWriterDestination(w io.Writer, level Level, formatter Formatter) *Destination {
	return &Destination{
		Kind:        KindStream,
		MinLevel:    level,
		CustomLevel: true,
		Formatter:   formatter,
		sink:        &writerSink{w: w},
	}
}

// FileRotation bounds a file destination. MaxBytes and BackupCount follow
// the ".N" backup convention; rotation never triggers when either is
// zero. Setting MaxAge or Compress switches to timed/compressed rotation
// (backup names then carry timestamps instead of ".N" suffixes).
type FileRotation struct {
	MaxBytes    int64
	BackupCount int
	MaxAge      time.Duration
	Compress    bool
}

// NewFileDestination creates a destination appending to the given file,
// creating parent directories if absent. The level is considered
// explicitly chosen.
func NewFileDestination(path string, level Level, formatter Formatter, rotation FileRotation) (*Destination, error) {
	sink, err := newFileSink(path, rotation)
	if err != nil {
		return nil, err
	}
	return &Destination{
		Kind:        KindFile,
		MinLevel:    level,
		CustomLevel: true,
		Formatter:   formatter,
		sink:        sink,
	}, nil
}

func newFileSink(path string, rotation FileRotation) (Sink, error) {
	if rotation.MaxAge > 0 || rotation.Compress {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		maxSizeMB := int(rotation.MaxBytes / (1024 * 1024))
		if rotation.MaxBytes > 0 && maxSizeMB == 0 {
			// Minimum granularity of the timed rotation backend is 1MB.
			maxSizeMB = 1
		}
		maxAgeDays := int(rotation.MaxAge.Hours() / 24)
		if rotation.MaxAge > 0 && maxAgeDays == 0 {
			maxAgeDays = 1
		}
		return &writerSink{w: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: rotation.BackupCount,
			MaxAge:     maxAgeDays,
			Compress:   rotation.Compress,
			LocalTime:  false,
		}}, nil
	}

	w, err := rotate.New(path, rotation.MaxBytes, rotation.BackupCount)
	if err != nil {
		return nil, err
	}
	return &writerSink{w: w}, nil
}
