package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// newLogger returns the diagnostic logger. Checker tracing appears at debug
// level under --verbose; otherwise only warnings are shown.
func newLogger(w io.Writer, verbose, color bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    !color,
	}))
}

// commandLogger builds the logger for cmd from its persistent flags.
func commandLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	return newLogger(cmd.ErrOrStderr(), verbose, useColor(cmd))
}
