package logzero

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf16"
)

// jsonDateFormat is the timestamp layout of the asctime JSON field,
// millisecond precision with a comma separator.
const jsonDateFormat = "2006-01-02 15:04:05.000"

// JSONFormatter renders records as one flat JSON object per line with a
// fixed field set.
type JSONFormatter struct {
	// EnsureASCII escapes non-ASCII characters as \uXXXX sequences.
	// When false (the default), output is raw UTF-8.
	EnsureASCII bool
	// DateFormat overrides the asctime layout.
	DateFormat string
}

// NewJSONFormatter returns a JSON formatter.
func NewJSONFormatter(ensureASCII bool) *JSONFormatter {
	return &JSONFormatter{EnsureASCII: ensureASCII}
}

// Format renders the record as a JSON object. Like every formatter it
// never fails; a marshalling error degrades to a fallback line.
func (f *JSONFormatter) Format(r *Record) string {
	dateFormat := f.DateFormat
	if dateFormat == "" {
		dateFormat = jsonDateFormat
	}
	asctime := r.Time.Format(dateFormat)
	if dateFormat == jsonDateFormat {
		// Python-style "HH:MM:SS,mmm" millisecond separator.
		asctime = asctime[:len(asctime)-4] + "," + asctime[len(asctime)-3:]
	}

	message := safeString(r.Message)
	if r.Trace != "" {
		message = message + "\n" + safeString(r.Trace)
	}

	obj := map[string]interface{}{
		"asctime":     asctime,
		"filename":    r.File,
		"funcName":    r.Function,
		"levelname":   r.Level.String(),
		"levelno":     int(r.Level),
		"lineno":      r.Line,
		"module":      r.Module,
		"message":     message,
		"name":        r.Name,
		"pathname":    r.Path,
		"process":     r.PID,
		"processName": r.Process,
		"threadName":  r.Goroutine,
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return fallbackLine(err, r)
	}
	if f.EnsureASCII {
		b = escapeNonASCII(b)
	}
	return string(b)
}

// escapeNonASCII rewrites every non-ASCII rune in the marshalled JSON as a
// \uXXXX escape (surrogate pairs for runes beyond the BMP). Non-ASCII
// bytes only occur inside JSON strings, so the rewrite is safe.
func escapeNonASCII(b []byte) []byte {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, r := range string(b) {
		switch {
		case r < 0x80:
			sb.WriteRune(r)
		case r > 0xffff:
			r1, r2 := utf16.EncodeRune(r)
			fmt.Fprintf(&sb, "\\u%04x\\u%04x", r1, r2)
		default:
			fmt.Fprintf(&sb, "\\u%04x", r)
		}
	}
	return []byte(sb.String())
}
