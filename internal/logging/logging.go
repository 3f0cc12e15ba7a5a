// Package logging holds the process-wide structured logger. Output goes to
// a JSON log file under the data directory; the terminal stays reserved
// for command output.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu     sync.RWMutex
	global = slog.New(slog.NewJSONHandler(io.Discard, nil))
)

// Setup opens the log file under dataDir and installs the global logger.
// The returned func closes the file. Before Setup (and after a failed
// Setup) the logger discards everything.
func Setup(dataDir string, debug bool) (func() error, error) {
	dir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(filepath.Join(dir, "helioviz.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})

	mu.Lock()
	global = slog.New(h)
	mu.Unlock()

	return func() error {
		mu.Lock()
		global = slog.New(slog.NewJSONHandler(io.Discard, nil))
		mu.Unlock()
		return f.Close()
	}, nil
}

// L returns the current global logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}
