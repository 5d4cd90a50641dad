// Package pidfile keeps a second controller from attaching to the same
// store and queues.
package pidfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// File is the on-disk PID record of the running controller daemon.
type File struct {
	path string
}

// New returns a File at the given path. Nothing is written until Acquire.
func New(path string) *File {
	return &File{path: path}
}

// Acquire records this process's PID, refusing when the recorded PID still
// belongs to a live process. A stale or garbled record is replaced.
func (f *File) Acquire() error {
	data, err := os.ReadFile(f.path)
	switch {
	case err == nil:
		if pid, convErr := strconv.Atoi(strings.TrimSpace(string(data))); convErr == nil && alive(pid) {
			return fmt.Errorf("another controller holds %s (PID %d)", f.path, pid)
		}
		_ = os.Remove(f.path)
	case !os.IsNotExist(err):
		return fmt.Errorf("failed to read PID file %s: %w", f.path, err)
	}

	record := strconv.Itoa(os.Getpid()) + "\n"
	if err := os.WriteFile(f.path, []byte(record), 0644); err != nil {
		return fmt.Errorf("failed to write PID file %s: %w", f.path, err)
	}
	return nil
}

// Release removes the record. A missing file is not an error, so Release is
// safe to defer next to a failed Acquire.
func (f *File) Release() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file %s: %w", f.path, err)
	}
	return nil
}

// alive reports whether a process with the given PID exists. Signal 0 probes
// without delivering anything; EPERM still means the process is there.
func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = process.Signal(syscall.Signal(0))
	return err == nil || err == syscall.EPERM
}
