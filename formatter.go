package logzero

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/metachris/logzero/internal/term"
)

// Formatter renders a single record into exactly one string. It must never
// fail: implementations degrade to a fallback string identifying the
// problem instead of propagating errors, so that a bad message can never
// crash the calling application.
type Formatter interface {
	Format(r *Record) string
}

// Default line and date formats of the text formatter.
const (
	// DefaultFormat is the default log line template. The text between
	// %(color)s and %(end_color)s is colored depending on the level if
	// color support is on.
	DefaultFormat = "%(color)s[%(levelname)1.1s %(asctime)s %(module)s:%(lineno)d]%(end_color)s %(message)s"

	// DefaultDateFormat renders timestamps as "YYMMDD HH:MM:SS".
	DefaultDateFormat = "060102 15:04:05"

	// DateFormatISO8601 renders timestamps with millisecond precision and
	// the local UTC offset.
	DateFormatISO8601 = "2006-01-02T15:04:05.000-07:00"

	// DateFormatISO8601SpacedOffset is like DateFormatISO8601 but inserts
	// a space before the offset sign, as expected by some log-ingestion
	// pipelines.
	DateFormatISO8601SpacedOffset = "2006-01-02T15:04:05.000 -07:00"
)

// ANSI foreground color escape codes used by the default color mapping.
const (
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
	colorPurple = "\x1b[35m"
	colorCyan   = "\x1b[36m"
	colorReset  = "\x1b[39m"
)

// DefaultColors maps levels to terminal color codes. CRITICAL is
// intentionally unmapped and renders without color.
var DefaultColors = map[Level]string{
	DEBUG:   colorCyan,
	INFO:    colorGreen,
	WARNING: colorYellow,
	ERROR:   colorRed,
}

// TextFormatter renders records as single, optionally colorized lines.
// Key features:
//   - Color support when logging to a terminal that supports it.
//   - Timestamps on every log line.
//   - Robust against invalid UTF-8 in messages and traces.
type TextFormatter struct {
	// LineFormat is the log line template. Tokens of the form %(name)s
	// are substituted from the record.
	LineFormat string
	// DateFormat is the time layout for the %(asctime)s token.
	DateFormat string
	// Colors maps levels to color escape codes. Levels without a mapping
	// render without color.
	Colors map[Level]string
	// Color enables colorized output.
	Color bool
	// SyslogLevelNames rewrites the level name and number to the syslog
	// convention (DBG/7, INF/6, WRN/4, ERR/3, CRIT/2) before substitution.
	SyslogLevelNames bool
}

// NewTextFormatter returns the default text formatter. Color is enabled
// when stderr is attached to a color-capable terminal (or forced via the
// LOGZERO_FORCE_COLOR environment variable).
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		LineFormat: DefaultFormat,
		DateFormat: DefaultDateFormat,
		Colors:     DefaultColors,
		Color:      term.SupportsColor(os.Stderr),
	}
}

// NewUncoloredTextFormatter returns the default text formatter with color
// disabled, suitable for files and pipes.
func NewUncoloredTextFormatter() *TextFormatter {
	f := NewTextFormatter()
	f.Color = false
	return f
}

// Format renders the record. It never panics; an internal failure degrades
// to a fallback line containing the error and the raw record.
func (f *TextFormatter) Format(r *Record) (out string) {
	defer func() {
		if p := recover(); p != nil {
			out = fallbackLine(p, r)
		}
	}()

	color, endColor := "", ""
	if f.Color {
		if c, ok := f.Colors[r.Level]; ok {
			color = c
			endColor = colorReset
		}
	}

	levelName := r.Level.String()
	levelNo := int(r.Level)
	if f.SyslogLevelNames {
		levelName = r.Level.SyslogName()
		levelNo = r.Level.SyslogNumber()
	}

	dateFormat := f.DateFormat
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	format := f.LineFormat
	if format == "" {
		format = DefaultFormat
	}

	// Longer tokens first so %(levelname)1.1s wins over %(levelname)s.
	replacer := strings.NewReplacer(
		"%(levelname)1.1s", levelName[:1],
		"%(levelname)s", levelName,
		"%(levelno)d", strconv.Itoa(levelNo),
		"%(color)s", color,
		"%(end_color)s", endColor,
		"%(asctime)s", r.Time.Format(dateFormat),
		"%(module)s", r.Module,
		"%(filename)s", r.File,
		"%(pathname)s", r.Path,
		"%(funcName)s", r.Function,
		"%(lineno)d", strconv.Itoa(r.Line),
		"%(name)s", r.Name,
		"%(process)d", strconv.Itoa(r.PID),
		"%(processName)s", r.Process,
		"%(threadName)s", r.Goroutine,
		"%(message)s", safeString(r.Message),
	)
	formatted := replacer.Replace(format)

	if r.Trace != "" {
		// Defend each trace line individually so one undecodable line does
		// not swallow the rest.
		lines := []string{strings.TrimRight(formatted, " \n")}
		for _, ln := range strings.Split(r.Trace, "\n") {
			lines = append(lines, safeString(ln))
		}
		formatted = strings.Join(lines, "\n")
	}

	// Indent continuation lines so multi-line records stay visually
	// attached to their header line.
	return strings.ReplaceAll(formatted, "\n", "\n    ")
}

// safeString returns s unchanged if it is valid UTF-8, else a quoted debug
// representation. Raw byte payloads must make it to the logs in some
// readable form rather than being dropped.
func safeString(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strconv.Quote(s)
}

// fallbackLine is the last-resort rendering used when a formatter fails.
func fallbackLine(problem interface{}, r *Record) string {
	return fmt.Sprintf("Bad message (%v): %#v", problem, r)
}
