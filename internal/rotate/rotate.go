// Package rotate implements a size-bounded rotating file writer.
//
// The active file keeps its configured name; backups are suffixed ".1",
// ".2", ... up to the configured backup count, oldest discarded. Rotation
// triggers when a write would push the active file beyond MaxBytes. When
// either MaxBytes or BackupCount is zero, rotation never triggers and the
// file grows unbounded.
package rotate

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Writer is an append-only rotating file writer. It is safe for concurrent
// writers; rotation is a critical section so no writer observes a
// half-rotated file.
type Writer struct {
	mu       sync.Mutex
	path     string
	maxBytes int64
	backups  int
	file     *os.File
	size     int64
}

// New opens (or creates) the file at path for appending, creating the
// parent directory and any intermediate directories if absent.
func New(path string, maxBytes int64, backups int) (*Writer, error) {
	if path == "" {
		return nil, fmt.Errorf("rotate: path is required")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	w := &Writer{path: path, maxBytes: maxBytes, backups: backups}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) open() error {
	file, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", w.path, err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to stat log file %s: %w", w.path, err)
	}
	w.file = file
	w.size = info.Size()
	return nil
}

// Write appends p to the active file, rotating first if the write would
// exceed the size bound.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, fmt.Errorf("rotate: writer is closed")
	}
	if w.maxBytes > 0 && w.backups > 0 && w.size+int64(len(p)) > w.maxBytes {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := w.file.Write(p)
	w.size += int64(n)
	if err != nil {
		return n, fmt.Errorf("failed to write log line: %w", err)
	}
	return n, nil
}

// rotate closes the active file, shifts backups upward (".N" -> ".N+1",
// the backup beyond the retention count is discarded), moves the active
// file to ".1" and opens a fresh empty file. Caller holds the lock.
func (w *Writer) rotate() error {
	if err := w.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file for rotation: %w", err)
	}
	w.file = nil

	_ = os.Remove(w.backupPath(w.backups))
	for i := w.backups - 1; i >= 1; i-- {
		src := w.backupPath(i)
		if _, err := os.Stat(src); err == nil {
			if err := os.Rename(src, w.backupPath(i+1)); err != nil {
				return fmt.Errorf("failed to shift log backup %s: %w", src, err)
			}
		}
	}
	if _, err := os.Stat(w.path); err == nil {
		if err := os.Rename(w.path, w.backupPath(1)); err != nil {
			return fmt.Errorf("failed to archive log file %s: %w", w.path, err)
		}
	}
	if err := w.open(); err != nil {
		return err
	}
	return nil
}

func (w *Writer) backupPath(n int) string {
	return w.path + "." + strconv.Itoa(n)
}

// Close closes the active file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}
