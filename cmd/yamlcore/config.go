package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
)

// invocationLogger returns a structured logger tagged with a fresh
// correlation ID for one CLI invocation, so that multiple runs piped
// through the same log sink can be told apart.
func invocationLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("invocation_id", uuid.NewString())
}

// bindSerializeFlags registers the serializer-shaping flags on fs, mapping
// them onto the options record EmitText takes.
func bindSerializeFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Indent, "indent", 2, "spaces per nesting level (must be >= 2)")
	fs.IntVar(&cfg.Width, "width", 80, "column hint for scalar wrapping (0 = unlimited)")
	fs.BoolVar(&cfg.DocumentMarkers, "document-markers", false, `emit a leading "---" document start marker`)
}
