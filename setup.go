package logzero

import (
	"fmt"
	"log/syslog"
	"os"
	"time"
)

// Stream selects the console destination of a logger.
type Stream string

const (
	StreamStderr Stream = "stderr"
	StreamStdout Stream = "stdout"
	StreamNone   Stream = "none"
)

// Options is the desired configuration consumed by Setup.
type Options struct {
	// Name of the logger; empty means the process-wide default logger.
	Name string
	// Level is the minimum severity to display. Zero means DEBUG.
	Level Level
	// LogFile, if set, also writes logs to the given file path. Parent
	// directories are created if absent.
	LogFile string
	// Formatter overrides the default text formatter. Ignored when JSON
	// is set.
	Formatter Formatter
	// MaxBytes is the size of the logfile at which rollover occurs.
	// Zero disables rotation.
	MaxBytes int64
	// BackupCount is the number of rotated backups to keep. Zero
	// disables rotation.
	BackupCount int
	// FileLevel sets a custom minimum severity for the file destination.
	// Nil means the file uses Level.
	FileLevel *Level
	// FileMaxAge and FileCompress switch the file destination to
	// timed/compressed rotation.
	FileMaxAge   time.Duration
	FileCompress bool
	// Stream selects the console destination: stderr (default), stdout
	// or none.
	Stream Stream
	// JSON enables structured JSON output instead of text.
	JSON bool
	// JSONEnsureASCII escapes non-ASCII characters in JSON output.
	JSONEnsureASCII bool
}

// Setup configures and returns a fully configured logger instance from
// the process-wide registry, no hassles. If a logger with the given name
// already exists, its destination set is reconciled in place: repeated
// calls with the same options never duplicate or lose destinations.
func Setup(opts Options) (*Logger, error) {
	return defaultRegistry.Setup(opts)
}

// Setup applies the desired configuration to the named logger, creating
// it if absent. See the package-level Setup.
func (r *Registry) Setup(opts Options) (*Logger, error) {
	if opts.Name == "" {
		opts.Name = DefaultLoggerName
	}
	if opts.Level == 0 {
		opts.Level = DEBUG
	}

	l := r.GetOrCreate(opts.Name)
	warning, err := l.reconcile(opts)
	if err != nil {
		return nil, err
	}
	if warning != "" {
		l.Warning("%s", warning)
	}
	return l, nil
}

// Reset tears the named logger down to its initial state: every
// destination removed, threshold DEBUG, formatter cleared, then
// reconfigured with defaults. Primarily used to return the default
// logger to a known state, e.g. between tests.
func (r *Registry) Reset(name string) (*Logger, error) {
	if name == "" {
		name = DefaultLoggerName
	}
	l := r.GetOrCreate(name)

	l.mu.Lock()
	for _, d := range l.dests {
		if d.Internal {
			_ = d.Close()
		}
	}
	l.dests = nil
	l.level = DEBUG
	l.formatter = nil
	l.mu.Unlock()

	return r.Setup(Options{Name: name})
}

// reconcile mutates the logger's destination set and thresholds in place
// to match the desired options, preserving destinations the engine did
// not create. Returns a diagnostic for recovered configuration problems.
func (l *Logger) reconcile(opts Options) (warning string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// The logger-level gate must never be stricter than a destination
	// that wants to see lower-severity records.
	threshold := opts.Level
	if opts.FileLevel != nil && *opts.FileLevel < threshold {
		threshold = *opts.FileLevel
	}
	l.level = threshold

	var formatter Formatter
	switch {
	case opts.JSON:
		formatter = NewJSONFormatter(opts.JSONEnsureASCII)
	case opts.Formatter != nil:
		formatter = opts.Formatter
	default:
		formatter = NewTextFormatter()
	}
	l.formatter = formatter

	stream, warning := resolveStream(opts.Stream)

	var kept []*Destination
	var streamDest *Destination
	for _, d := range l.dests {
		if !d.Internal {
			// Not owned by the engine: left structurally alone, but kept
			// in sync with the new level and formatter.
			if !d.CustomLevel {
				d.MinLevel = opts.Level
			}
			d.Formatter = formatter
			kept = append(kept, d)
			continue
		}
		switch d.Kind {
		case KindFile:
			// File destinations cannot be updated in place: changing the
			// target path requires reopening. Recreated below if still
			// wanted.
			_ = d.Close()
		case KindStream:
			if stream != nil && d.stream == stream {
				d.MinLevel = opts.Level
				d.CustomLevel = false
				d.Formatter = formatter
				streamDest = d
				kept = append(kept, d)
			} else {
				_ = d.Close()
			}
		default:
			// Internal syslog/GELF destinations survive reconfiguration,
			// synced like everything else.
			if !d.CustomLevel {
				d.MinLevel = opts.Level
			}
			d.Formatter = formatter
			kept = append(kept, d)
		}
	}

	if stream != nil && streamDest == nil {
		d := NewStreamDestination(stream, opts.Level, formatter)
		d.Internal = true
		d.CustomLevel = false
		kept = append(kept, d)
	}

	if opts.LogFile != "" {
		fileLevel := opts.Level
		custom := false
		if opts.FileLevel != nil {
			fileLevel = *opts.FileLevel
			custom = true
		}
		d, ferr := NewFileDestination(opts.LogFile, fileLevel, uncolored(formatter), FileRotation{
			MaxBytes:    opts.MaxBytes,
			BackupCount: opts.BackupCount,
			MaxAge:      opts.FileMaxAge,
			Compress:    opts.FileCompress,
		})
		if ferr != nil {
			l.dests = kept
			return warning, ferr
		}
		d.Internal = true
		d.CustomLevel = custom
		kept = append(kept, d)
	}

	l.dests = kept
	return warning, nil
}

// resolveStream maps a stream selector to its file. Unrecognized
// selectors recover to stderr with a diagnostic rather than failing.
func resolveStream(s Stream) (*os.File, string) {
	switch s {
	case "", StreamStderr:
		return os.Stderr, ""
	case StreamStdout:
		return os.Stdout, ""
	case StreamNone:
		return nil, ""
	}
	return os.Stderr, fmt.Sprintf("invalid log stream %q, using stderr", string(s))
}

// uncolored returns a color-free copy of a text formatter so color codes
// never end up in logfiles. Other formatters pass through unchanged.
func uncolored(f Formatter) Formatter {
	if tf, ok := f.(*TextFormatter); ok && tf.Color {
		clone := *tf
		clone.Color = false
		return &clone
	}
	return f
}

// FileOptions configures LogFile.
type FileOptions struct {
	// Formatter replaces the logger's active formatter before the file
	// destination is created.
	Formatter Formatter
	// MaxBytes and BackupCount bound the logfile; when either is zero
	// the file grows unbounded.
	MaxBytes    int64
	BackupCount int
	// Level sets a custom minimum severity for the file destination,
	// protected from blanket level changes. Nil means the logger's
	// current threshold.
	Level *Level
	// MaxAge and Compress switch to timed/compressed rotation.
	MaxAge   time.Duration
	Compress bool
	// DisableStreams also removes the internal console destination.
	DisableStreams bool
}

// LogFile replaces the logger's internal file destination with one
// writing to the given path. An empty path just removes the existing
// internal file destination.
func (l *Logger) LogFile(path string, opts FileOptions) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.removeInternal(opts.DisableStreams)

	if opts.Formatter != nil {
		l.formatter = opts.Formatter
	}
	formatter := l.formatter
	if formatter == nil {
		formatter = NewTextFormatter()
		l.formatter = formatter
	}
	for _, d := range l.dests {
		d.Formatter = formatter
	}

	if path == "" {
		return nil
	}

	level := l.level
	custom := false
	if opts.Level != nil {
		level = *opts.Level
		custom = true
	}
	d, err := NewFileDestination(path, level, uncolored(formatter), FileRotation{
		MaxBytes:    opts.MaxBytes,
		BackupCount: opts.BackupCount,
		MaxAge:      opts.MaxAge,
		Compress:    opts.Compress,
	})
	if err != nil {
		return err
	}
	d.Internal = true
	d.CustomLevel = custom
	l.dests = append(l.dests, d)
	return nil
}

// AddSyslog removes the internal file destination and (optionally) the
// internal console destination, then attaches an internal syslog
// destination with the given facility. The returned destination can be
// adjusted externally, e.g. for a custom level.
func (l *Logger) AddSyslog(facility syslog.Priority, disableStreams bool) (*Destination, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.removeInternal(disableStreams)

	formatter := l.formatter
	if formatter == nil {
		formatter = NewUncoloredTextFormatter()
	}
	d, err := NewSyslogDestination(facility, l.level, uncolored(formatter))
	if err != nil {
		return nil, err
	}
	d.Internal = true
	d.CustomLevel = false
	l.dests = append(l.dests, d)
	return d, nil
}

// AddGELF is like AddSyslog but attaches a GELF network destination.
func (l *Logger) AddGELF(addr string, opts GELFOptions, disableStreams bool) (*Destination, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.removeInternal(disableStreams)

	formatter := l.formatter
	if formatter == nil {
		formatter = NewUncoloredTextFormatter()
	}
	d, err := NewGELFDestination(addr, l.level, uncolored(formatter), opts)
	if err != nil {
		return nil, err
	}
	d.Internal = true
	d.CustomLevel = false
	l.dests = append(l.dests, d)
	return d, nil
}

// removeInternal drops internal file, syslog and GELF destinations, plus
// internal stream destinations when removeStreams is set. Caller holds
// the lock.
func (l *Logger) removeInternal(removeStreams bool) {
	var kept []*Destination
	for _, d := range l.dests {
		if d.Internal {
			switch d.Kind {
			case KindFile, KindSyslog, KindGELF:
				_ = d.Close()
				continue
			case KindStream:
				if removeStreams {
					_ = d.Close()
					continue
				}
			}
		}
		kept = append(kept, d)
	}
	l.dests = kept
}
