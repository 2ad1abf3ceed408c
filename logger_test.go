package logzero

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"golang.org/x/time/rate"
)

// testLogger returns a logger with a single buffer destination using a
// bare message formatter.
func testLogger(t *testing.T, level Level) (*Logger, *bytes.Buffer) {
	t.Helper()
	reg := NewRegistry()
	l, err := reg.Setup(Options{Name: t.Name(), Level: level, Stream: StreamNone})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	l.AddDestination(NewWriterDestination(&buf, level, &TextFormatter{LineFormat: "%(levelname)s %(message)s"}))
	return l, &buf
}

func TestLoggerLevels(t *testing.T) {
	l, buf := testLogger(t, DEBUG)

	l.Debug("d%d", 1)
	l.Info("i")
	l.Warning("w")
	l.Error("e")
	l.Critical("c")

	want := "DEBUG d1\nINFO i\nWARNING w\nERROR e\nCRITICAL c\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLoggerThresholdGate(t *testing.T) {
	l, buf := testLogger(t, WARNING)

	l.Debug("nope")
	l.Info("nope")
	l.Warning("yes")

	if got := buf.String(); got != "WARNING yes\n" {
		t.Errorf("output = %q", got)
	}
}

func TestLoggerCallerCapture(t *testing.T) {
	reg := NewRegistry()
	l, err := reg.Setup(Options{Name: "caller", Stream: StreamNone})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	l.AddDestination(NewWriterDestination(&buf, DEBUG, &TextFormatter{LineFormat: "%(module)s %(funcName)s"}))

	l.Info("hi")

	got := strings.TrimSpace(buf.String())
	if got != "logger_test TestLoggerCallerCapture" {
		t.Errorf("caller = %q, want %q", got, "logger_test TestLoggerCallerCapture")
	}
}

func TestLoggerException(t *testing.T) {
	l, buf := testLogger(t, DEBUG)

	l.Exception(errors.New("boom"), "operation failed")

	out := buf.String()
	if !strings.Contains(out, "ERROR operation failed") {
		t.Errorf("missing error line: %q", out)
	}
	if !strings.Contains(out, "boom") {
		t.Errorf("missing error text: %q", out)
	}
	if !strings.Contains(out, "logger_test.go") {
		t.Errorf("missing stack trace: %q", out)
	}
}

func TestLoggerConcurrentEmit(t *testing.T) {
	l, buf := testLogger(t, DEBUG)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Info("worker %d message %d", n, j)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 8*50 {
		t.Errorf("got %d lines, want %d", len(lines), 8*50)
	}
}

func TestLoggerReconfigureDuringEmit(t *testing.T) {
	l, buf := testLogger(t, DEBUG)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			l.Info("message %d", i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if i%2 == 0 {
				l.SetLevel(DEBUG, true)
				l.SetFormatter(&TextFormatter{LineFormat: "%(message)s"}, true)
			} else {
				l.SetLevel(INFO, true)
				l.SetFormatter(&TextFormatter{LineFormat: "%(levelname)s %(message)s"}, true)
			}
		}
	}()
	wg.Wait()

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if !strings.Contains(line, "message") {
			t.Fatalf("corrupt line %q", line)
		}
	}
}

func TestDestinationRateLimit(t *testing.T) {
	l, buf := testLogger(t, DEBUG)
	for _, d := range l.Destinations() {
		// No refill within the test window: only the burst gets through.
		d.Limiter = rate.NewLimiter(rate.Limit(0.0001), 2)
	}

	for i := 0; i < 10; i++ {
		l.Info("m%d", i)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Errorf("got %d lines, want 2 (burst)", len(lines))
	}
}

func TestDestinationCustomLevelGate(t *testing.T) {
	reg := NewRegistry()
	l, err := reg.Setup(Options{Name: "destgate", Level: DEBUG, Stream: StreamNone})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	l.AddDestination(NewWriterDestination(&buf, ERROR, &TextFormatter{LineFormat: "%(message)s"}))

	l.Info("filtered by destination")
	l.Error("passes")

	if got := strings.TrimSpace(buf.String()); got != "passes" {
		t.Errorf("output = %q", got)
	}
}
