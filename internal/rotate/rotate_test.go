package rotate

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestWriterNoRotationWhenUnbounded(t *testing.T) {
	tests := []struct {
		name     string
		maxBytes int64
		backups  int
	}{
		{"both zero", 0, 0},
		{"max bytes zero", 0, 3},
		{"backups zero", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "app.log")
			w, err := New(path, tt.maxBytes, tt.backups)
			if err != nil {
				t.Fatal(err)
			}
			defer w.Close()

			for i := 0; i < 10; i++ {
				if _, err := w.Write([]byte("0123456789\n")); err != nil {
					t.Fatal(err)
				}
			}

			if _, err := os.Stat(path + ".1"); err == nil {
				t.Error("backup created although rotation is disabled")
			}
			if got := len(readFile(t, path)); got != 110 {
				t.Errorf("active file size = %d, want 110", got)
			}
		})
	}
}

func TestWriterRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := New(path, 10, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	records := []string{"aaaaaaaa\n", "bbbbbbbb\n", "cccccccc\n"}
	for _, rec := range records {
		if _, err := w.Write([]byte(rec)); err != nil {
			t.Fatal(err)
		}
	}

	if got := readFile(t, path); got != "cccccccc\n" {
		t.Errorf("active file = %q, want only the most recent record", got)
	}
	if got := readFile(t, path+".1"); got != "bbbbbbbb\n" {
		t.Errorf("backup .1 = %q, want the previous record", got)
	}
	if got := readFile(t, path+".2"); got != "aaaaaaaa\n" {
		t.Errorf("backup .2 = %q, want the oldest record", got)
	}
}

func TestWriterBackupRetention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := New(path, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for i := 0; i < 6; i++ {
		rec := strings.Repeat(strconv.Itoa(i), 8) + "\n"
		if _, err := w.Write([]byte(rec)); err != nil {
			t.Fatal(err)
		}
	}

	// Exactly two backups retained, oldest discarded.
	if got := readFile(t, path); got != "55555555\n" {
		t.Errorf("active file = %q", got)
	}
	if got := readFile(t, path+".1"); got != "44444444\n" {
		t.Errorf("backup .1 = %q", got)
	}
	if got := readFile(t, path+".2"); got != "33333333\n" {
		t.Errorf("backup .2 = %q", got)
	}
	if _, err := os.Stat(path + ".3"); err == nil {
		t.Error("backup .3 exists beyond the retention count")
	}
}

func TestWriterActiveFileNeverExceedsBoundByMoreThanOneRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := New(path, 20, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for i := 0; i < 12; i++ {
		if _, err := w.Write([]byte("0123456\n")); err != nil {
			t.Fatal(err)
		}
		if size := int64(len(readFile(t, path))); size > 20+8 {
			t.Fatalf("active file grew to %d bytes, bound is 20 plus one record", size)
		}
	}
}

func TestWriterCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "app.log")
	w, err := New(path, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if _, err := w.Write([]byte("x\n")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestWriterAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("old\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New(path, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if _, err := w.Write([]byte("new\n")); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "old\nnew\n" {
		t.Errorf("file = %q, want old content preserved", got)
	}
}

func TestWriterClosedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	w, err := New(path, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("x")); err == nil {
		t.Error("write after Close did not fail")
	}
}
