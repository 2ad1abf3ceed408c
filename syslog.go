package logzero

import (
	"fmt"
	"log/syslog"
)

// syslogSink forwards rendered lines to the platform syslog facility,
// mapping the record severity to the syslog write call.
type syslogSink struct {
	w *syslog.Writer
}

func (s *syslogSink) Write(r *Record, line string) error {
	var err error
	switch {
	case r.Level >= CRITICAL:
		err = s.w.Crit(line)
	case r.Level >= ERROR:
		err = s.w.Err(line)
	case r.Level >= WARNING:
		err = s.w.Warning(line)
	case r.Level >= INFO:
		err = s.w.Info(line)
	default:
		err = s.w.Debug(line)
	}
	if err != nil {
		return fmt.Errorf("failed to write syslog message: %w", err)
	}
	return nil
}

func (s *syslogSink) Close() error { return s.w.Close() }

// NewSyslogDestination creates a destination forwarding to the platform
// syslog with the given facility. The level is considered explicitly
// chosen.
func NewSyslogDestination(facility syslog.Priority, level Level, formatter Formatter) (*Destination, error) {
	w, err := syslog.New(facility|syslog.LOG_DEBUG, processName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to syslog: %w", err)
	}
	return &Destination{
		Kind:        KindSyslog,
		MinLevel:    level,
		CustomLevel: true,
		Formatter:   formatter,
		sink:        &syslogSink{w: w},
	}, nil
}
