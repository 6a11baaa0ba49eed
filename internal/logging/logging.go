// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zerolog logger used by every pure-import stage.
// There is no package-level logger: callers construct one from LogConfig and
// pass it to the components they create.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pure-import/pkg/types"
)

// filePrefix names daily log files: <dir>/pure-import-2026-01-31.log.
const filePrefix = "pure-import-"

// nowFunc is swapped by tests to pin the daily log file name.
var nowFunc = time.Now

// New creates a logger from cfg. The returned closer releases the log file
// when Output is "file" and is a no-op otherwise.
func New(cfg types.LogConfig) (zerolog.Logger, io.Closer, error) {
	out, closer, err := openOutput(cfg)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var w io.Writer = out
	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.DateTime,
			NoColor:    out != os.Stderr || os.Getenv("NO_COLOR") != "",
		}
	}

	level := ParseLevel(cfg.Level)
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger, closer, nil
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none", "disabled":
		return zerolog.Disabled
	case "":
		return zerolog.InfoLevel
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// FilePath returns the log file used for day t under dir.
func FilePath(dir string, t time.Time) string {
	return filepath.Join(dir, filePrefix+t.Format("2006-01-02")+".log")
}

func openOutput(cfg types.LogConfig) (io.Writer, io.Closer, error) {
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		return os.Stderr, nopCloser{}, nil
	case "stdout":
		return os.Stdout, nopCloser{}, nil
	case "discard", "none":
		return io.Discard, nopCloser{}, nil
	case "file":
		dir := cfg.Dir
		if dir == "" {
			dir = "logs"
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(FilePath(dir, nowFunc()), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		return f, f, nil
	default:
		return nil, nil, fmt.Errorf("unknown log output %q", cfg.Output)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
