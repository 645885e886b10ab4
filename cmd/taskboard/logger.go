package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dori/taskboard/internal/config"
)

// newLogger builds the process logger. Console output goes to console;
// with logging.file set, lines are also appended there in logfmt. The
// returned close function releases the file.
func newLogger(console io.Writer, cfg config.LoggingConfig) (*log.Logger, func() error, error) {
	level, err := cfg.ParseLevel()
	if err != nil {
		return nil, nil, err
	}
	if console == nil {
		console = io.Discard
	}

	opts := log.Options{
		Level:           level,
		Prefix:          "taskboard",
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.TextFormatter,
	}
	if cfg.File == "" {
		return log.NewWithOptions(console, opts), func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	w := io.Writer(f)
	if console != io.Discard {
		w = io.MultiWriter(console, f)
	}
	opts.Formatter = log.LogfmtFormatter
	return log.NewWithOptions(w, opts), f.Close, nil
}
