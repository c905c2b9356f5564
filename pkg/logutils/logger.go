package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options controls where and how log lines are written.
type Options struct {
	// Level is one of: debug, info, warn, error, fatal.
	Level string
	// File receives the logs. When empty, logs go to stderr so they do not
	// mix with command output on stdout.
	File string
	// Console switches from JSON lines to zerolog's human readable writer.
	Console bool
}

// New returns a logger configured by opts and a closer for the underlying
// file, if any.
func New(opts Options) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	// File Setup
	var writer io.Writer = os.Stderr
	if opts.File != "" {
		logsDir := filepath.Dir(opts.File)
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		osFile, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = osFile.Close() }
		writer = osFile
	}

	if opts.Console {
		writer = zerolog.ConsoleWriter{
			Out:        writer,
			NoColor:    opts.File != "",
			TimeFormat: time.Kitchen,
		}
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}
