package logzero

import (
	"fmt"
	"os"

	"gopkg.in/Graylog2/go-gelf.v2/gelf"
)

// Writer factories as variables to allow mocking in tests.
var (
	gelfUDPWriterFactory = gelf.NewUDPWriter
	gelfTCPWriterFactory = gelf.NewTCPWriter
)

// GELFOptions configures a GELF network destination.
type GELFOptions struct {
	// Protocol is "udp" (default) or "tcp".
	Protocol string
	// Compression is "none" (default), "gzip" or "zlib"; UDP only.
	Compression string
}

// gelfSink forwards records to a Graylog server.
type gelfSink struct {
	writer   gelf.Writer
	hostName string
}

func (g *gelfSink) Write(r *Record, line string) error {
	msg := &gelf.Message{
		Version:  "1.1",
		Host:     g.hostName,
		Short:    r.Message,
		Full:     line,
		TimeUnix: float64(r.Time.Unix()) + float64(r.Time.Nanosecond())/1e9,
		Level:    int32(r.Level.SyslogNumber()),
		Extra: map[string]interface{}{
			"_logger":       r.Name,
			"_module":       r.Module,
			"_func":         r.Function,
			"_file":         r.File,
			"_line":         r.Line,
			"_process":      r.PID,
			"_process_name": r.Process,
		},
	}
	return g.writer.WriteMessage(msg)
}

func (g *gelfSink) Close() error { return g.writer.Close() }

// NewGELFDestination creates a destination forwarding records to a GELF
// endpoint (addr is "host:port"). The level is considered explicitly
// chosen.
func NewGELFDestination(addr string, level Level, formatter Formatter, opts GELFOptions) (*Destination, error) {
	if addr == "" {
		return nil, fmt.Errorf("address is required for GELF destination")
	}

	hostName, err := os.Hostname()
	if err != nil {
		hostName = "unknown"
	}

	var writer gelf.Writer
	if opts.Protocol == "tcp" {
		writer, err = gelfTCPWriterFactory(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to create GELF TCP writer: %w", err)
		}
	} else {
		udpWriter, err := gelfUDPWriterFactory(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to create GELF UDP writer: %w", err)
		}
		switch opts.Compression {
		case "gzip":
			udpWriter.CompressionType = gelf.CompressGzip
		case "zlib":
			udpWriter.CompressionType = gelf.CompressZlib
		default:
			udpWriter.CompressionType = gelf.CompressNone
		}
		writer = udpWriter
	}

	return &Destination{
		Kind:        KindGELF,
		MinLevel:    level,
		CustomLevel: true,
		Formatter:   formatter,
		sink:        &gelfSink{writer: writer, hostName: hostName},
	}, nil
}
