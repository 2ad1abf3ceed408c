package logzero

import (
	"strings"
	"testing"
	"time"
)

func testRecord() *Record {
	return &Record{
		Time:      time.Date(2017, 2, 13, 15, 2, 0, 0, time.UTC),
		Level:     INFO,
		Message:   "hello",
		Name:      "test_logger",
		Module:    "test",
		Function:  "TestSomething",
		File:      "test.go",
		Path:      "/src/test.go",
		Line:      203,
		PID:       42,
		Process:   "test-bin",
		Goroutine: "goroutine-1",
	}
}

func TestTextFormatterDefaultFormat(t *testing.T) {
	f := &TextFormatter{}
	got := f.Format(testRecord())
	want := "[I 170213 15:02:00 test:203] hello"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestTextFormatterColors(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		wantColor string
	}{
		{"debug is cyan", DEBUG, "\x1b[36m"},
		{"info is green", INFO, "\x1b[32m"},
		{"warning is yellow", WARNING, "\x1b[33m"},
		{"error is red", ERROR, "\x1b[31m"},
		{"critical is unmapped", CRITICAL, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextFormatter{Color: true, Colors: DefaultColors}
			r := testRecord()
			r.Level = tt.level
			got := f.Format(r)
			if tt.wantColor == "" {
				if strings.Contains(got, "\x1b[") {
					t.Errorf("unmapped level rendered with color: %q", got)
				}
				return
			}
			if !strings.HasPrefix(got, tt.wantColor) {
				t.Errorf("Format() = %q, want prefix %q", got, tt.wantColor)
			}
			if !strings.Contains(got, colorReset) {
				t.Errorf("Format() = %q, missing end-color code", got)
			}
		})
	}
}

func TestTextFormatterColorDisabled(t *testing.T) {
	f := &TextFormatter{Color: false, Colors: DefaultColors}
	got := f.Format(testRecord())
	if strings.Contains(got, "\x1b[") {
		t.Errorf("color disabled but escape codes present: %q", got)
	}
}

func TestTextFormatterSyslogLevelNames(t *testing.T) {
	f := &TextFormatter{
		LineFormat:       "%(levelname)s %(levelno)d %(message)s",
		SyslogLevelNames: true,
	}
	tests := []struct {
		level Level
		want  string
	}{
		{DEBUG, "DBG 7 hello"},
		{INFO, "INF 6 hello"},
		{WARNING, "WRN 4 hello"},
		{ERROR, "ERR 3 hello"},
		{CRITICAL, "CRIT 2 hello"},
	}
	for _, tt := range tests {
		r := testRecord()
		r.Level = tt.level
		if got := f.Format(r); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestTextFormatterContinuationIndent(t *testing.T) {
	f := &TextFormatter{}
	r := testRecord()
	r.Message = "line one\nline two"
	got := f.Format(r)
	if !strings.Contains(got, "line one\n    line two") {
		t.Errorf("continuation lines not indented: %q", got)
	}
}

func TestTextFormatterTrace(t *testing.T) {
	f := &TextFormatter{}
	r := testRecord()
	r.Trace = "some error\nmain.run()\n\t/src/main.go:10"
	got := f.Format(r)
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %q", len(lines), got)
	}
	if lines[0] != "[I 170213 15:02:00 test:203] hello" {
		t.Errorf("header line = %q", lines[0])
	}
	for _, ln := range lines[1:] {
		if !strings.HasPrefix(ln, "    ") {
			t.Errorf("trace line %q not indented", ln)
		}
	}
}

func TestTextFormatterInvalidUTF8(t *testing.T) {
	f := &TextFormatter{}
	r := testRecord()
	r.Message = "payload: \xff\xfe"
	got := f.Format(r)
	// The raw bytes must be rendered via a debug representation, not
	// dropped or propagated as an error.
	if !strings.Contains(got, `\xff`) {
		t.Errorf("invalid UTF-8 not rendered as debug representation: %q", got)
	}
}

func TestTextFormatterCustomDateFormat(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"iso8601", DateFormatISO8601, "2017-02-13T15:02:00.000+00:00"},
		{"iso8601 spaced offset", DateFormatISO8601SpacedOffset, "2017-02-13T15:02:00.000 +00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TextFormatter{LineFormat: "%(asctime)s", DateFormat: tt.layout}
			if got := f.Format(testRecord()); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSafeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"unicode ß", "unicode ß"},
		{"bad \xff", `"bad \xff"`},
	}
	for _, tt := range tests {
		if got := safeString(tt.in); got != tt.want {
			t.Errorf("safeString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
